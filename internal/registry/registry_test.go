package registry

import (
	"reflect"
	"testing"

	"github.com/AndreyAkinshin/testreg/internal/errors"
)

func TestRegistry_Create(t *testing.T) {
	r := New()

	tgt, err := r.Create("test_alpha", KindExecutable)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tgt.Name() != "test_alpha" {
		t.Errorf("Name() = %q, want %q", tgt.Name(), "test_alpha")
	}
	if tgt.Kind() != KindExecutable {
		t.Errorf("Kind() = %q, want %q", tgt.Kind(), KindExecutable)
	}
	if !r.Exists("test_alpha") {
		t.Error("Exists(test_alpha) = false after Create")
	}
}

func TestRegistry_Create_Duplicate(t *testing.T) {
	r := New()

	if _, err := r.Create("test_alpha", KindExecutable); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := r.Create("test_alpha", KindAggregate)
	if !errors.IsDuplicate(err) {
		t.Fatalf("Create() error = %v, want duplicate", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d after failed Create, want 1", r.Len())
	}
}

func TestRegistry_Get(t *testing.T) {
	r := New()
	_, _ = r.Create("test_alpha", KindExecutable)

	tgt, ok := r.Get("test_alpha")
	if !ok {
		t.Fatal("Get(test_alpha) = not found")
	}
	if tgt.Name() != "test_alpha" {
		t.Errorf("Name() = %q, want %q", tgt.Name(), "test_alpha")
	}

	_, ok = r.Get("nonexistent")
	if ok {
		t.Error("Get(nonexistent) = found, want not found")
	}
}

func TestRegistry_AddDependency(t *testing.T) {
	r := New()
	_, _ = r.Create("test_alpha", KindExecutable)
	_, _ = r.Create("run_test_alpha", KindRunWrapper)

	if err := r.AddDependency("run_test_alpha", "test_alpha"); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}

	tgt, _ := r.Get("run_test_alpha")
	if !reflect.DeepEqual(tgt.DependsOn(), []string{"test_alpha"}) {
		t.Errorf("DependsOn() = %v, want [test_alpha]", tgt.DependsOn())
	}
}

func TestRegistry_AddDependency_Idempotent(t *testing.T) {
	r := New()
	_, _ = r.Create("a", KindExecutable)
	_, _ = r.Create("b", KindAggregate)

	for i := 0; i < 3; i++ {
		if err := r.AddDependency("b", "a"); err != nil {
			t.Fatalf("AddDependency() #%d error = %v", i, err)
		}
	}

	tgt, _ := r.Get("b")
	if len(tgt.DependsOn()) != 1 {
		t.Errorf("len(DependsOn()) = %d, want 1", len(tgt.DependsOn()))
	}
}

func TestRegistry_AddDependency_UnknownTarget(t *testing.T) {
	r := New()
	_, _ = r.Create("a", KindExecutable)

	if err := r.AddDependency("ghost", "a"); !errors.IsUnknownTarget(err) {
		t.Errorf("AddDependency(ghost, a) error = %v, want unknown target", err)
	}
	if err := r.AddDependency("a", "ghost"); !errors.IsUnknownTarget(err) {
		t.Errorf("AddDependency(a, ghost) error = %v, want unknown target", err)
	}
}

func TestRegistry_AddDependency_SelfCycle(t *testing.T) {
	r := New()
	_, _ = r.Create("a", KindExecutable)

	if err := r.AddDependency("a", "a"); !errors.IsCycle(err) {
		t.Errorf("AddDependency(a, a) error = %v, want cycle", err)
	}
}

func TestRegistry_AddDependency_TransitiveCycle(t *testing.T) {
	r := New()
	_, _ = r.Create("a", KindExecutable)
	_, _ = r.Create("b", KindExecutable)
	_, _ = r.Create("c", KindExecutable)

	if err := r.AddDependency("b", "a"); err != nil {
		t.Fatalf("AddDependency(b, a) error = %v", err)
	}
	if err := r.AddDependency("c", "b"); err != nil {
		t.Fatalf("AddDependency(c, b) error = %v", err)
	}

	err := r.AddDependency("a", "c")
	if !errors.IsCycle(err) {
		t.Fatalf("AddDependency(a, c) error = %v, want cycle", err)
	}

	// Rejected edge must not have mutated the graph.
	tgt, _ := r.Get("a")
	if len(tgt.DependsOn()) != 0 {
		t.Errorf("DependsOn() = %v after rejected edge, want empty", tgt.DependsOn())
	}
}

func TestRegistry_ByKind(t *testing.T) {
	r := New()
	_, _ = r.Create("test_beta", KindExecutable)
	_, _ = r.Create("test_alpha", KindExecutable)
	_, _ = r.Create("run_test_alpha", KindRunWrapper)
	_, _ = r.Create("build-all-tests", KindAggregate)

	executables := r.ByKind(KindExecutable)
	if len(executables) != 2 {
		t.Fatalf("len(ByKind(executable)) = %d, want 2", len(executables))
	}
	if executables[0].Name() != "test_alpha" || executables[1].Name() != "test_beta" {
		t.Errorf("ByKind(executable) not sorted: %q, %q", executables[0].Name(), executables[1].Name())
	}

	aggregates := r.ByKind(KindAggregate)
	if len(aggregates) != 1 {
		t.Errorf("len(ByKind(aggregate)) = %d, want 1", len(aggregates))
	}
}

func TestRegistry_Names(t *testing.T) {
	r := New()
	_, _ = r.Create("b", KindExecutable)
	_, _ = r.Create("a", KindExecutable)

	if !reflect.DeepEqual(r.Names(), []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", r.Names())
	}
}

func TestRegistry_TopologicalOrder(t *testing.T) {
	r := New()
	_, _ = r.Create("test_alpha", KindExecutable)
	_, _ = r.Create("run_test_alpha", KindRunWrapper)
	_, _ = r.Create("run-all-tests", KindAggregate)
	_ = r.AddDependency("run_test_alpha", "test_alpha")
	_ = r.AddDependency("run-all-tests", "run_test_alpha")

	ordered, err := r.TopologicalOrder([]string{"run-all-tests"})
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}

	names := make([]string, len(ordered))
	for i, tgt := range ordered {
		names[i] = tgt.Name()
	}
	want := []string{"test_alpha", "run_test_alpha", "run-all-tests"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("TopologicalOrder() = %v, want %v", names, want)
	}
}

func TestRegistry_Validate(t *testing.T) {
	r := New()
	_, _ = r.Create("a", KindExecutable)
	_, _ = r.Create("b", KindAggregate)
	_ = r.AddDependency("b", "a")

	if err := r.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
