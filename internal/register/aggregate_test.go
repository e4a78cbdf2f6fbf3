package register

import (
	"testing"

	"github.com/AndreyAkinshin/testreg/internal/registry"
)

func TestAggregates_Ensure_CreatesOnce(t *testing.T) {
	reg := registry.New()
	a := NewAggregates(reg)

	first, err := a.Ensure(AggregateBuild)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if first.Kind() != registry.KindAggregate {
		t.Errorf("Kind() = %q, want %q", first.Kind(), registry.KindAggregate)
	}

	for i := 0; i < 5; i++ {
		again, err := a.Ensure(AggregateBuild)
		if err != nil {
			t.Fatalf("Ensure() #%d error = %v", i, err)
		}
		if again != first {
			t.Fatalf("Ensure() #%d returned a different target", i)
		}
	}

	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestAggregates_Ensure_IndependentOfOrder(t *testing.T) {
	reg := registry.New()
	a := NewAggregates(reg)

	if _, err := a.Ensure(AggregateRun); err != nil {
		t.Fatalf("Ensure(run) error = %v", err)
	}
	if _, err := a.Ensure(AggregateBuild); err != nil {
		t.Fatalf("Ensure(build) error = %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}
