package tetris

// shape is the layout of a stone, where non-zero entries are occupied
type shape [][]int

// stones are the seven tetrominoes in their spawn orientation
var stones = []shape{
	{
		{1, 1, 1},
		{0, 1, 0},
	},
	{
		{0, 2, 2},
		{2, 2, 0},
	},
	{
		{3, 3, 0},
		{0, 3, 3},
	},
	{
		{4, 0, 0},
		{4, 4, 4},
	},
	{
		{0, 0, 5},
		{5, 5, 5},
	},
	{
		{6, 6, 6, 6},
	},
	{
		{7, 7},
		{7, 7},
	},
}

// lineScores are the points awarded for clearing 0, 1, 2, 3, or 4
// lines with a single stone
var lineScores = []int{0, 40, 100, 300, 1200}

// rotateClockwise returns a copy of s rotated a quarter turn clockwise
func rotateClockwise(s shape) shape {
	h, w := len(s), len(s[0])
	rotated := make(shape, w)
	for i := range rotated {
		rotated[i] = make([]int, h)
		for j := range rotated[i] {
			rotated[i][j] = s[h-1-j][i]
		}
	}
	return rotated
}

func (s shape) width() int {
	return len(s[0])
}

func (s shape) height() int {
	return len(s)
}
