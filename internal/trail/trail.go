package trail

// Stage is a named point along the trail that can start or end a trip.
type Stage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Segment is one daily leg between two adjacent stages.
type Segment struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Direction of travel along the stage list.
type Direction string

const (
	NorthToSouth Direction = "NS"
	SouthToNorth Direction = "SN"
)

// Stages is the fixed north-to-south ordering of the trail.
// Index order defines adjacency; do not reorder.
var Stages = []Stage{
	{ID: "ST", Name: "S. Torpes"},
	{ID: "PC", Name: "Porto Covo"},
	{ID: "VM", Name: "Vila Nova de Milfontes"},
	{ID: "AL", Name: "Almograve"},
	{ID: "ZM", Name: "Zambujeira do Mar"},
	{ID: "OD", Name: "Odeceixe"},
	{ID: "AJ", Name: "Aljezur"},
	{ID: "AR", Name: "Arrifana"},
	{ID: "CP", Name: "Carrapateira"},
	{ID: "VB", Name: "Vila do Bispo"},
	{ID: "SA", Name: "Sagres"},
	{ID: "SL", Name: "Salema"},
	{ID: "LZ", Name: "Luz"},
	{ID: "LG", Name: "Lagos"},
}

func stageIndex(id string) int {
	for i, s := range Stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// ValidStageID reports whether id is a known stage code.
func ValidStageID(id string) bool {
	return stageIndex(id) >= 0
}

// StageName returns the display name for a stage code, or "" when unknown.
func StageName(id string) string {
	i := stageIndex(id)
	if i < 0 {
		return ""
	}
	return Stages[i].Name
}

// ParseDirection accepts both the short codes and the long form stored on
// bookings ("north_south" / "south_north").
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "NS", "north_south":
		return NorthToSouth, true
	case "SN", "south_north":
		return SouthToNorth, true
	default:
		return "", false
	}
}

// SegmentsForDirection walks the full stage list in the given direction and
// pairs each stage with its immediate neighbour.
func SegmentsForDirection(d Direction) []Segment {
	n := len(Stages)
	segments := make([]Segment, 0, n-1)
	if d == NorthToSouth {
		for i := 0; i < n-1; i++ {
			segments = append(segments, Segment{From: Stages[i].ID, To: Stages[i+1].ID})
		}
		return segments
	}
	for i := n - 1; i > 0; i-- {
		segments = append(segments, Segment{From: Stages[i].ID, To: Stages[i-1].ID})
	}
	return segments
}

// GenerateRoute produces one segment per day from startID to endID, walking
// in whichever direction their positions imply. An unknown id or equal
// endpoints yields an empty route; callers treat that as "no route selected".
func GenerateRoute(startID, endID string) []Segment {
	start := stageIndex(startID)
	end := stageIndex(endID)
	if start < 0 || end < 0 || start == end {
		return nil
	}

	var segments []Segment
	if start < end {
		for i := start; i < end; i++ {
			segments = append(segments, Segment{From: Stages[i].ID, To: Stages[i+1].ID})
		}
	} else {
		for i := start; i > end; i-- {
			segments = append(segments, Segment{From: Stages[i].ID, To: Stages[i-1].ID})
		}
	}
	return segments
}

// ValidSegment reports whether from and to are adjacent stages, in either
// direction.
func ValidSegment(from, to string) bool {
	a := stageIndex(from)
	b := stageIndex(to)
	if a < 0 || b < 0 {
		return false
	}
	return a-b == 1 || b-a == 1
}

// RouteDirection infers the travel direction from the endpoint ordering.
func RouteDirection(startID, endID string) (Direction, bool) {
	start := stageIndex(startID)
	end := stageIndex(endID)
	if start < 0 || end < 0 || start == end {
		return "", false
	}
	if start < end {
		return NorthToSouth, true
	}
	return SouthToNorth, true
}

// RemainingDays counts the stage-index steps left from currentID to the end
// of the trail in the given direction. ok is false when the stage is unknown
// or no direction was chosen.
func RemainingDays(currentID string, d Direction) (int, bool) {
	if currentID == "" || (d != NorthToSouth && d != SouthToNorth) {
		return 0, false
	}
	i := stageIndex(currentID)
	if i < 0 {
		return 0, false
	}
	if d == NorthToSouth {
		return len(Stages) - 1 - i, true
	}
	return i, true
}
