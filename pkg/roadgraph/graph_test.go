package roadgraph

import "testing"

func TestGetBestPathPrefersLowerWeight(t *testing.T) {
	g := New()
	g.AddConnection(Connection{FromID: 1, ToID: 2, Weight: 1})
	g.AddConnection(Connection{FromID: 2, ToID: 3, Weight: 1})
	g.AddConnection(Connection{FromID: 1, ToID: 3, Weight: 3})

	path := g.GetBestPath(1, 3)
	want := []LaneID{1, 2, 3}
	if len(path) != len(want) {
		t.Fatalf("GetBestPath() = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("GetBestPath() = %v, want %v", path, want)
		}
	}
}

func TestGetBestPathUnreachableReturnsNil(t *testing.T) {
	g := New()
	g.AddConnection(Connection{FromID: 1, ToID: 2, Weight: 1})

	if path := g.GetBestPath(1, 99); path != nil {
		t.Fatalf("GetBestPath() = %v, want nil", path)
	}
}

func TestFindConnection(t *testing.T) {
	g := New()
	g.AddConnection(Connection{FromID: 1, ToID: 2, Weight: 5})

	c, ok := g.FindConnection(1, 2)
	if !ok || c.Weight != 5 {
		t.Fatalf("FindConnection() = %+v, %v, want weight 5, true", c, ok)
	}

	if _, ok := g.FindConnection(2, 1); ok {
		t.Fatalf("FindConnection(2,1) found a connection, want none")
	}
}

func TestCreateSubgraphRestrictsToGivenLanes(t *testing.T) {
	g := New()
	g.AddConnection(Connection{FromID: 1, ToID: 2, Weight: 1})
	g.AddConnection(Connection{FromID: 2, ToID: 3, Weight: 1})

	sub := g.CreateSubgraph([]LaneID{1, 2})
	if _, ok := sub.FindConnection(1, 2); !ok {
		t.Fatalf("subgraph missing connection 1->2")
	}
	if _, ok := sub.FindConnection(2, 3); ok {
		t.Fatalf("subgraph should not contain connection 2->3")
	}
}
