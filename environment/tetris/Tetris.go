// Package tetris implements a headless falling-block puzzle environment
package tetris

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/qtetris/environment"
	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Actions available in the environment
const (
	Left int = iota
	Right
	Drop
	Rotate
	InstaDrop
	Idle

	NumActions
)

// Default board dimensions
const (
	DefaultRows = 22
	DefaultCols = 10
)

// Reward given when a stone cannot be placed on the board
const GameOverReward = -1.0

// Tetris implements a game of Tetris. The board has rows x cols playable
// cells above a floor row which is always full. Each action is followed
// by gravity moving the falling stone down a single row, except for an
// insta-drop which places the stone immediately.
//
// The reward for each step is the number of lines cleared during the
// step, or GameOverReward if the step ended the game.
//
// Observations are the flattened board including the floor, in
// row-major order, where occupied cells and the cells of the falling
// stone are 1 and empty cells are 0.
type Tetris struct {
	rows, cols int
	board      [][]int // rows + 1 rows, the last being the floor

	stone          shape
	stoneX, stoneY int
	dist           distuv.Categorical

	score    int
	lines    int
	stoneCnt int
	gameOver bool

	currentStep ts.TimeStep
}

// New returns a new Tetris environment with the given board size. The
// seed determines the sequence of stones.
func New(rows, cols int, seed uint64) (*Tetris, error) {
	if rows < 4 {
		return nil, fmt.Errorf("new: rows must be >= 4 \n\thave(%v)", rows)
	}
	if cols < 4 {
		return nil, fmt.Errorf("new: cols must be >= 4 \n\thave(%v)", cols)
	}

	weights := make([]float64, len(stones))
	for i := range weights {
		weights[i] = 1.0
	}
	source := rand.NewSource(seed)

	t := &Tetris{
		rows: rows,
		cols: cols,
		dist: distuv.NewCategorical(weights, source),
	}
	return t, nil
}

// Reset starts a new game on an empty board
func (t *Tetris) Reset() (ts.TimeStep, error) {
	t.board = make([][]int, t.rows+1)
	for i := range t.board {
		t.board[i] = make([]int, t.cols)
	}
	for j := range t.board[t.rows] {
		t.board[t.rows][j] = 1
	}

	t.score = 0
	t.lines = 0
	t.stoneCnt = 0
	t.gameOver = false

	if t.spawn() {
		return ts.TimeStep{}, fmt.Errorf("reset: stone does not fit on " +
			"empty board")
	}

	t.currentStep = ts.New(ts.First, 0, t.Observe(), 0)
	return t.currentStep, nil
}

// Step takes a single action in the environment
func (t *Tetris) Step(action int) (ts.TimeStep, bool, error) {
	if t.board == nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: environment must " +
			"be reset before stepping")
	}
	if t.gameOver {
		return ts.TimeStep{}, true, fmt.Errorf("step: game over, " +
			"environment must be reset")
	}
	if action < 0 || action >= NumActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: invalid action "+
			"\n\twant([0, %v)) \n\thave(%v)", NumActions, action)
	}

	cleared := 0
	switch action {
	case Left:
		t.move(-1)
	case Right:
		t.move(1)
	case Drop:
		cleared += t.drop()
	case Rotate:
		t.rotate()
	case InstaDrop:
		cleared += t.instaDrop()
	}

	if action != InstaDrop && !t.gameOver {
		cleared += t.drop()
	}

	reward := float64(cleared)
	stepType := ts.Mid
	if t.gameOver {
		reward = GameOverReward
		stepType = ts.Last
	}

	t.currentStep = ts.New(stepType, reward, t.Observe(),
		t.currentStep.Number+1)
	return t.currentStep, t.gameOver, nil
}

// Observe returns the current observation of the board
func (t *Tetris) Observe() *mat.VecDense {
	obs := mat.NewVecDense((t.rows+1)*t.cols, nil)
	if t.board == nil {
		return obs
	}

	for i, row := range t.board {
		for j, cell := range row {
			if cell != 0 {
				obs.SetVec(i*t.cols+j, 1.0)
			}
		}
	}

	if !t.gameOver {
		for i, row := range t.stone {
			for j, cell := range row {
				if cell != 0 {
					obs.SetVec((t.stoneY+i)*t.cols+t.stoneX+j, 1.0)
				}
			}
		}
	}
	return obs
}

// ObservationSpec returns the observation specification of the
// environment
func (t *Tetris) ObservationSpec() environment.Spec {
	n := (t.rows + 1) * t.cols
	shape := mat.NewVecDense(n, nil)
	lower := mat.NewVecDense(n, nil)
	upper := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		upper.SetVec(i, 1.0)
	}

	spec, _ := environment.NewSpec(shape, environment.Observation, lower,
		upper, environment.Discrete)
	return spec
}

// ActionSpec returns the action specification of the environment
func (t *Tetris) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{float64(NumActions - 1)})

	spec, _ := environment.NewSpec(shape, environment.Action, lower, upper,
		environment.Discrete)
	return spec
}

// Score returns the points scored in the current game
func (t *Tetris) Score() int {
	return t.score
}

// Lines returns the number of lines cleared in the current game
func (t *Tetris) Lines() int {
	return t.lines
}

// StoneCount returns the number of stones placed in the current game
func (t *Tetris) StoneCount() int {
	return t.stoneCnt
}

// Dims returns the number of playable rows and columns of the board
func (t *Tetris) Dims() (r, c int) {
	return t.rows, t.cols
}

// spawn places a new stone at the top of the board and reports whether
// it collides, ending the game
func (t *Tetris) spawn() bool {
	t.stone = stones[int(t.dist.Rand())]
	t.stoneX = t.cols/2 - t.stone.width()/2
	t.stoneY = 0

	if t.collides(t.stone, t.stoneX, t.stoneY) {
		t.gameOver = true
	}
	return t.gameOver
}

// collides returns whether stone s placed with its top left corner at
// column x and row y overlaps occupied cells or leaves the board
func (t *Tetris) collides(s shape, x, y int) bool {
	if x < 0 || x+s.width() > t.cols || y < 0 || y+s.height() > t.rows+1 {
		return true
	}
	for i, row := range s {
		for j, cell := range row {
			if cell != 0 && t.board[y+i][x+j] != 0 {
				return true
			}
		}
	}
	return false
}

func (t *Tetris) move(dx int) {
	x := t.stoneX + dx
	if x < 0 {
		x = 0
	}
	if limit := t.cols - t.stone.width(); x > limit {
		x = limit
	}
	if !t.collides(t.stone, x, t.stoneY) {
		t.stoneX = x
	}
}

func (t *Tetris) rotate() {
	rotated := rotateClockwise(t.stone)
	if !t.collides(rotated, t.stoneX, t.stoneY) {
		t.stone = rotated
	}
}

// drop moves the stone down one row, locking it in place if it cannot
// move. It returns the number of lines cleared.
func (t *Tetris) drop() int {
	if !t.collides(t.stone, t.stoneX, t.stoneY+1) {
		t.stoneY++
		return 0
	}
	return t.lock()
}

// instaDrop drops the stone until it locks and returns the number of
// lines cleared
func (t *Tetris) instaDrop() int {
	for !t.collides(t.stone, t.stoneX, t.stoneY+1) {
		t.stoneY++
	}
	return t.lock()
}

// lock joins the falling stone to the board, clears full rows, and
// spawns the next stone
func (t *Tetris) lock() int {
	for i, row := range t.stone {
		for j, cell := range row {
			if cell != 0 {
				t.board[t.stoneY+i][t.stoneX+j] = cell
			}
		}
	}
	t.stoneCnt++

	cleared := t.clearRows()
	t.lines += cleared
	t.score += lineScores[cleared]

	t.spawn()
	return cleared
}

// clearRows removes all full playable rows, shifting the rows above
// down, and returns the number of rows removed
func (t *Tetris) clearRows() int {
	kept := make([][]int, 0, t.rows)
	for _, row := range t.board[:t.rows] {
		if !full(row) {
			kept = append(kept, row)
		}
	}
	cleared := t.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][]int, 0, t.rows+1)
	for i := 0; i < cleared; i++ {
		rows = append(rows, make([]int, t.cols))
	}
	rows = append(rows, kept...)
	rows = append(rows, t.board[t.rows])
	t.board = rows
	return cleared
}

func full(row []int) bool {
	for _, cell := range row {
		if cell == 0 {
			return false
		}
	}
	return true
}
