package scheduler

import "testing"

func TestAddRejectsBadExpression(t *testing.T) {
	s := New()
	if _, err := s.Add("not a cron line", func() {}); err == nil {
		t.Error("invalid expression accepted")
	}
	// Five fields are rejected too; expressions carry a seconds column.
	if _, err := s.Add("0 7 * * 1", func() {}); err == nil {
		t.Error("five-field expression accepted")
	}
}

func TestAddAndRemove(t *testing.T) {
	s := New()
	id1, err := s.Add("0 0,30 15 * * 1,2", func() {})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	id2, err := s.Add("*/30 * * * * *", func() {})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id1 == id2 || id1 == 0 || id2 == 0 {
		t.Errorf("expected distinct non-zero ids, got %d and %d", id1, id2)
	}
	s.Remove(id1)
	s.Remove(id1) // removing twice is harmless
}
