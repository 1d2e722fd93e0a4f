package keep

import "testing"

type withPointer struct {
	Name string
	Next *withPointer
}

type allValues struct {
	A int
	B [4]float64
}

func TestTypeNeedsZeroing(t *testing.T) {
	tests := []struct {
		name string
		info ComponentInfo
		want bool
	}{
		{"plain struct of numbers", componentInfoOf[allValues](), false},
		{"position struct", componentInfoOf[Position](), false},
		{"struct with pointer field", componentInfoOf[withPointer](), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typeNeedsZeroing(tt.info.ID.typ); got != tt.want {
				t.Errorf("typeNeedsZeroing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComponentIdOfIsStable(t *testing.T) {
	id1 := componentIdOf[Position]()
	id2 := componentIdOf[Position]()
	if id1 != id2 {
		t.Errorf("componentIdOf should be stable across calls for the same type")
	}

	idVel := componentIdOf[Velocity]()
	if id1 == idVel {
		t.Errorf("distinct types should have distinct ComponentId")
	}
}

func TestBitIndexOfIsStablePerType(t *testing.T) {
	a := bitIndexOf(componentIdOf[Position]())
	b := bitIndexOf(componentIdOf[Position]())
	if a != b {
		t.Errorf("bitIndexOf should return the same index for repeated lookups")
	}
}
