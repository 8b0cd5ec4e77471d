package room

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry()

	r, err := reg.Create("AB12", "conn-t", "Ms. X")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Code() != "AB12" {
		t.Errorf("code = %s, want AB12", r.Code())
	}

	// A live code is never silently hijacked.
	if _, err := reg.Create("AB12", "conn-other", "Impostor"); !errors.Is(err, ErrRoomExists) {
		t.Errorf("duplicate create = %v, want ErrRoomExists", err)
	}
	got, err := reg.Get("AB12")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TeacherConnID() != "conn-t" {
		t.Error("original teacher must survive a duplicate create attempt")
	}
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("NOPE"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Get unknown = %v, want ErrRoomNotFound", err)
	}
}

func TestRegistry_Remove(t *testing.T) {
	reg := NewRegistry()
	reg.Create("AB12", "conn-t", "Ms. X")

	reg.Remove("AB12")
	if _, err := reg.Get("AB12"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Get after remove = %v, want ErrRoomNotFound", err)
	}

	// Idempotent
	reg.Remove("AB12")
	if reg.Count() != 0 {
		t.Errorf("Count = %d, want 0", reg.Count())
	}

	// The code is reusable afterwards.
	if _, err := reg.Create("AB12", "conn-t2", "Mr. Y"); err != nil {
		t.Errorf("re-create after remove: %v", err)
	}
}

func TestGenerateCode(t *testing.T) {
	reg := NewRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := reg.GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if len(code) != codeLen {
			t.Fatalf("code %q has length %d, want %d", code, len(code), codeLen)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeChars, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 50 draws from 32^6 colliding entirely would mean a broken generator.
	if len(seen) < 2 {
		t.Error("generator produced a single code 50 times")
	}
}

func TestGenerateCode_AvoidsLiveRooms(t *testing.T) {
	reg := NewRegistry()
	code, err := reg.GenerateCode()
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if _, err := reg.Create(code, "conn-t", "Ms. X"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 20; i++ {
		next, err := reg.GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if next == code {
			t.Fatalf("generated a code that is already live: %s", next)
		}
	}
}
