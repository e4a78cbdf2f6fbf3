package framework

import (
	"testing"

	"github.com/AndreyAkinshin/testreg/internal/errors"
)

func TestProbeResolver_FirstMatch(t *testing.T) {
	r := NewProbeResolver([]string{"gtest_main", "unity"}, func(name string) bool {
		return name == "unity"
	})

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "unity" {
		t.Errorf("Resolve() = %q, want %q", got, "unity")
	}
}

func TestProbeResolver_ProbeOrder(t *testing.T) {
	var probed []string
	r := NewProbeResolver([]string{"gtest_main", "gtest", "unity"}, func(name string) bool {
		probed = append(probed, name)
		return name == "gtest"
	})

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "gtest" {
		t.Errorf("Resolve() = %q, want %q", got, "gtest")
	}
	if len(probed) != 2 || probed[0] != "gtest_main" || probed[1] != "gtest" {
		t.Errorf("probe order = %v, want [gtest_main gtest]", probed)
	}
}

func TestProbeResolver_NoneAvailable(t *testing.T) {
	r := NewProbeResolver(nil, func(string) bool { return false })

	_, err := r.Resolve()
	if !errors.IsMissingDependency(err) {
		t.Fatalf("Resolve() error = %v, want missing dependency", err)
	}
}

func TestProbeResolver_DefaultCandidates(t *testing.T) {
	var probed []string
	r := NewProbeResolver(nil, func(name string) bool {
		probed = append(probed, name)
		return false
	})

	_, _ = r.Resolve()
	if len(probed) != len(DefaultEntryCandidates) {
		t.Errorf("probed %d candidates, want %d", len(probed), len(DefaultEntryCandidates))
	}
}
