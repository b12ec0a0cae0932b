package game

// Cell addresses one position on the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line is one of the 8 fixed winning triples.
type Line [3]Cell

// Lines enumerates every winning triple in evaluation order: rows top to
// bottom, columns left to right, main diagonal, anti-diagonal. Evaluate
// reports the first complete line in this order.
var Lines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Status classifies a board: still playable, won, or drawn.
type Status string

const (
	InProgress Status = "in_progress"
	Won        Status = "won"
	Draw       Status = "draw"
)

// Outcome is the result of evaluating a board. Winner and Line are only
// meaningful when Status is Won; exactly one Status holds for any board.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
	Line   Line   `json:"line"`
}

// Terminal reports whether no further moves are accepted.
func (o Outcome) Terminal() bool {
	return o.Status != InProgress
}

// Evaluate inspects a board in a single pass: the first complete line in
// Lines order wins, a full board with no winner is a draw, anything else is
// still in progress.
func Evaluate(b Board) Outcome {
	for _, line := range Lines {
		first := b[line[0].Row][line[0].Col]
		if first == None {
			continue
		}
		if b[line[1].Row][line[1].Col] == first && b[line[2].Row][line[2].Col] == first {
			return Outcome{Status: Won, Winner: first, Line: line}
		}
	}

	if b.IsFull() {
		return Outcome{Status: Draw}
	}

	return Outcome{Status: InProgress}
}
