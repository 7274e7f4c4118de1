package music

// Scale is a set of semitone offsets from the tonic.
type Scale struct {
	Name    string
	Offsets []int
}

// Scales in draw order.
var Scales = []Scale{
	{"major", []int{0, 2, 4, 5, 7, 9, 11}},
	{"minor", []int{0, 2, 3, 5, 7, 8, 10}},
	{"pentatonic", []int{0, 2, 4, 7, 9}},
	{"blues", []int{0, 3, 5, 6, 7, 10}},
}

// Progressions hold the chord roots of each bar in a four bar cycle, in
// semitones from the tonic.
var Progressions = [][]int{
	{0, 5, 7, 5}, // I-IV-V-IV
	{0, 7, 9, 5}, // I-V-vi-IV
	{0, 9, 5, 7}, // I-vi-IV-V
	{0, 5, 0, 7}, // I-IV-I-V
	{9, 5, 0, 7}, // vi-IV-I-V
	{0, 3, 5, 7}, // I-iii-IV-V
}

// triad approximates the chord over a root as a major triad.
func triad(root int) []int {
	return []int{root, (root + 4) % 12, (root + 7) % 12}
}
