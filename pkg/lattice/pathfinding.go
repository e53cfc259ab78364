// pkg/lattice/pathfinding.go
package lattice

import (
	"container/heap"
	"errors"
)

var ErrNoPath = errors.New("no path found")

// Connectivity selects the neighbour set used by AStar.
type Connectivity int

const (
	FaceConnected Connectivity = 6
	FullConnected Connectivity = 26
)

// faceDirections: forward, back, left, right, up, down.
var faceDirections = []Coord{
	{0, 0, 1}, {0, 0, -1}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0},
}

var fullDirections = func() []Coord {
	dirs := make([]Coord, 0, 26)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				dirs = append(dirs, Coord{dx, dy, dz})
			}
		}
	}
	return dirs
}()

func (c Connectivity) directions() []Coord {
	if c == FullConnected {
		return fullDirections
	}
	return faceDirections
}

// AStar finds the shortest path from start to goal, skipping blocked cells.
// Among open nodes with equal f-score the earliest inserted is expanded first,
// so the same lattice snapshot always yields the same path.
func AStar(l *Lattice, start, goal Coord, conn Connectivity) ([]Coord, error) {
	if l.Blocked(start) || l.Blocked(goal) {
		return nil, ErrNoPath
	}
	pq := &PriorityQueue{}
	heap.Init(pq)
	seq := 0
	push := func(n *Node) {
		n.seq = seq
		seq++
		heap.Push(pq, n)
	}
	push(&Node{Pos: start, G: 0, F: start.Distance(goal)})
	gScore := map[Coord]float64{start: 0}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if current.G > gScore[current.Pos] {
			continue // stale entry
		}
		if current.Pos == goal {
			return reconstructPath(current), nil
		}
		for _, dir := range conn.directions() {
			neighbor := current.Pos.Add(dir)
			if l.Blocked(neighbor) {
				continue
			}
			tentative := current.G + current.Pos.Distance(neighbor)
			if g, seen := gScore[neighbor]; !seen || tentative < g {
				gScore[neighbor] = tentative
				push(&Node{
					Pos:    neighbor,
					G:      tentative,
					F:      tentative + neighbor.Distance(goal),
					Parent: current,
				})
			}
		}
	}
	return nil, ErrNoPath
}

// PriorityQueue для A*
type PriorityQueue []*Node

type Node struct {
	Pos    Coord
	G, F   float64
	Parent *Node
	seq    int
}

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].F != pq[j].F {
		return pq[i].F < pq[j].F
	}
	return pq[i].seq < pq[j].seq
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func reconstructPath(node *Node) []Coord {
	var path []Coord
	for n := node; n != nil; n = n.Parent {
		path = append(path, n.Pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
