package dsu

import "testing"

func TestUnionDetectsCycle(t *testing.T) {
	d := New(4)

	if !d.Union(0, 1) {
		t.Fatal("first union should succeed")
	}
	if !d.Union(1, 2) {
		t.Fatal("chain union should succeed")
	}
	// 0 and 2 are now transitively connected.
	if d.Union(0, 2) {
		t.Error("union of already-connected vertices should report a cycle")
	}
	if !d.Connected(0, 2) {
		t.Error("0 and 2 should be connected")
	}
	if d.Connected(0, 3) {
		t.Error("3 is still a singleton")
	}
}

func TestSets(t *testing.T) {
	d := New(5)
	if d.Sets() != 5 {
		t.Fatalf("Sets = %d, want 5", d.Sets())
	}
	d.Union(0, 1)
	d.Union(2, 3)
	if d.Sets() != 3 {
		t.Fatalf("Sets = %d, want 3", d.Sets())
	}
	// A failed union must not change the component count.
	d.Union(1, 0)
	if d.Sets() != 3 {
		t.Fatalf("Sets after no-op union = %d, want 3", d.Sets())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := New(4)
	d.Union(0, 1)

	snap := d.Clone()
	d.Union(2, 3)
	d.Union(0, 2)

	if snap.Connected(2, 3) {
		t.Error("clone should not see unions made after the snapshot")
	}
	if snap.Sets() != 3 {
		t.Errorf("clone Sets = %d, want 3", snap.Sets())
	}
	if d.Sets() != 1 {
		t.Errorf("original Sets = %d, want 1", d.Sets())
	}

	// Mutating the clone must not leak back.
	snap.Union(1, 3)
	if !d.Connected(1, 3) {
		// 1 and 3 are connected in the original through 0-2, so this
		// only checks the original was not corrupted structurally.
		t.Error("original lost connectivity after clone mutation")
	}
}

func TestFindCompressesPaths(t *testing.T) {
	d := New(100)
	for i := 0; i < 99; i++ {
		d.Union(i, i+1)
	}
	root := d.Find(0)
	for i := 0; i < 100; i++ {
		if d.Find(i) != root {
			t.Fatalf("vertex %d has root %d, want %d", i, d.Find(i), root)
		}
	}
}
