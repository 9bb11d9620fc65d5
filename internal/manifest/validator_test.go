package manifest

import (
	"strings"
	"testing"
)

func TestValidateAcceptsSamplePlan(t *testing.T) {
	result, err := Validate([]byte(samplePlan))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Errorf("sample plan invalid: %v", result.Issues)
	}
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	bad := `name: p
packages:
  - name: x
    strategies: [conda]
`
	result, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("plan with unknown strategy passed validation")
	}

	found := false
	for _, issue := range result.Issues {
		if strings.HasPrefix(issue.Path, "/packages/0/strategies") {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %v, want one located at /packages/0/strategies", result.Issues)
	}
}

func TestValidateRejectsMissingName(t *testing.T) {
	bad := `packages:
  - name: x
    strategies: [prebuilt-wheel]
`
	result, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Error("plan without a name passed validation")
	}
}

func TestValidateRejectsUnknownField(t *testing.T) {
	bad := `name: p
retries: 3
packages:
  - name: x
    strategies: [prebuilt-wheel]
`
	result, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Error("plan with unknown top-level field passed validation")
	}
}

func TestValidateFile(t *testing.T) {
	result, err := ValidateFile(writePlan(t, samplePlan))
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("sample plan invalid: %v", result.Issues)
	}
}
