package lattice

import (
	"errors"
	"reflect"
	"testing"
)

func TestAStarStraightLine(t *testing.T) {
	l := New(5, 1, 1)
	path, err := AStar(l, Coord{0, 0, 0}, Coord{4, 0, 0}, FaceConnected)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	want := []Coord{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestAStarStartIsGoal(t *testing.T) {
	l := New(2, 2, 2)
	path, err := AStar(l, Coord{1, 1, 1}, Coord{1, 1, 1}, FaceConnected)
	if err != nil || len(path) != 1 {
		t.Fatalf("expected single-cell path, got %v, %v", path, err)
	}
}

func TestAStarAvoidsBlockedCells(t *testing.T) {
	l := New(3, 1, 3)
	_ = l.Mark(Coord{1, 0, 1}, Obstacle)
	path, err := AStar(l, Coord{0, 0, 0}, Coord{2, 0, 2}, FaceConnected)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	if len(path) != 5 {
		t.Errorf("expected 5 cells around the obstacle, got %d: %v", len(path), path)
	}
	for _, c := range path {
		if c == (Coord{1, 0, 1}) {
			t.Fatal("path crosses the obstacle")
		}
	}
	for i := 1; i < len(path); i++ {
		if d := path[i].Distance(path[i-1]); d != 1 {
			t.Errorf("step %d is not face-adjacent (%.2f)", i, d)
		}
	}
}

func TestAStarNoPath(t *testing.T) {
	l := New(3, 1, 1)
	_ = l.Mark(Coord{1, 0, 0}, Building)
	if _, err := AStar(l, Coord{0, 0, 0}, Coord{2, 0, 0}, FaceConnected); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
	if _, err := AStar(l, Coord{1, 0, 0}, Coord{2, 0, 0}, FaceConnected); !errors.Is(err, ErrNoPath) {
		t.Errorf("blocked start should fail, got %v", err)
	}
}

func TestAStarFullConnectivityTakesDiagonals(t *testing.T) {
	l := New(3, 3, 3)
	path, err := AStar(l, Coord{0, 0, 0}, Coord{2, 2, 2}, FullConnected)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	if len(path) != 3 {
		t.Errorf("expected diagonal path of 3 cells, got %v", path)
	}
	face, _ := AStar(l, Coord{0, 0, 0}, Coord{2, 2, 2}, FaceConnected)
	if len(face) != 7 {
		t.Errorf("expected 7 cells with face connectivity, got %d", len(face))
	}
}

func TestAStarIsDeterministic(t *testing.T) {
	l := New(8, 4, 8)
	for _, c := range []Coord{{3, 0, 3}, {4, 1, 2}, {2, 2, 5}, {5, 0, 5}} {
		_ = l.Mark(c, Obstacle)
	}
	first, err := AStar(l, Coord{0, 0, 0}, Coord{7, 3, 7}, FaceConnected)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _ := AStar(l, Coord{0, 0, 0}, Coord{7, 3, 7}, FaceConnected)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%v\n%v", i, first, again)
		}
	}
}
