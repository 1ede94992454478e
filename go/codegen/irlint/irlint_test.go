package irlint

import "testing"

const validTailCallIR = `
define i8* @cem_user_loop(i8* %stack) {
entry:
  %next = musttail call i8* @cem_user_loop(i8* %stack)
  ret i8* %next
}
`

const brokenTailCallIR = `
define i8* @cem_user_loop(i8* %stack) {
entry:
  %next = musttail call i8* @cem_user_loop(i8* %stack)
  %tmp = ptrtoint i8* %next to i64
  ret i8* %next
}
`

func TestCheckMusttailAcceptsImmediateRet(t *testing.T) {
	if v := CheckMusttail(validTailCallIR); len(v) != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestCheckMusttailRejectsInterveningInstruction(t *testing.T) {
	v := CheckMusttail(brokenTailCallIR)
	if len(v) != 1 {
		t.Fatalf("expected exactly 1 violation, got %d: %v", len(v), v)
	}
	if v[0].Function != "cem_user_loop" {
		t.Fatalf("violation attributed to wrong function: %q", v[0].Function)
	}
}

const phiIR = `
define i64 @cem_user_branch(i1 %cond) {
entry:
  br i1 %cond, label %then, label %else
then:
  br label %merge
else:
  br label %merge
merge:
  %result = phi i64 [ 1, %then ], [ 2, %else ]
  ret i64 %result
}
`

func TestCheckPhiPredecessorsAcceptsMatchingLabels(t *testing.T) {
	preds := map[string]map[string]bool{
		"merge": {"then": true, "else": true},
	}
	if v := CheckPhiPredecessors(phiIR, preds); len(v) != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestCheckPhiPredecessorsRejectsStaleLabel(t *testing.T) {
	// Simulates the nested-if regression of scenario 7: an inner merge block
	// was introduced between "then" and "merge", so "then" is no longer an
	// actual predecessor of "merge".
	preds := map[string]map[string]bool{
		"merge": {"inner_merge": true, "else": true},
	}
	v := CheckPhiPredecessors(phiIR, preds)
	if len(v) != 1 {
		t.Fatalf("expected exactly 1 violation, got %d: %v", len(v), v)
	}
}
