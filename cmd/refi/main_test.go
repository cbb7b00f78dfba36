package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"refi-advisor/service"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEvaluate_Worthwhile(t *testing.T) {
	out, _, err := execute(t, "evaluate",
		"--balance", "1,000,000", "--current-rate", "5.5", "--new-rate", "3.5", "--years", "25", "--costs", "10000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{service.HeadlineWorthwhile, "נקודת איזון", "₪"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	_, stderr, err := execute(t, "evaluate", "--balance", "abc", "--current-rate", "4", "--new-rate", "4.5")

	var verrs service.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if !verrs.Has(service.FieldBalance, service.KindInvalidNumber) ||
		!verrs.Has(service.FieldYears, service.KindMissingRequiredField) ||
		!verrs.Has(service.FieldNewRate, service.KindInvalidRelationship) {
		t.Errorf("unexpected errors %v", verrs)
	}
	if strings.Count(stderr, "•") != len(verrs) {
		t.Errorf("expected one line per error:\n%s", stderr)
	}
}

func TestPayment_WithSchedule(t *testing.T) {
	out, _, err := execute(t, "payment", "--principal", "1200", "--rate", "0", "--years", "1", "--schedule")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "₪100") || !strings.Contains(out, "₪1,200") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestEarlyFee_DefaultTrack(t *testing.T) {
	out, _, err := execute(t, "early-fee", "--principal", "1000000", "--rate", "6", "--years-left", "12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "fixed_unlinked") || !strings.Contains(out, "₪2,640") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRates_ListsTracks(t *testing.T) {
	out, _, err := execute(t, "rates")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, track := range []string{"prime", "fixed_linked", "variable_unlinked"} {
		if !strings.Contains(out, track) {
			t.Errorf("missing %s in output:\n%s", track, out)
		}
	}
}
