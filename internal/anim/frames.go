// Package anim drives the mascot animation: four modes advanced on a fixed
// wall-clock tick.
package anim

// Set names a frame sequence.
type Set string

const (
	SetLogo           Set = "logo"
	SetHappyLoop      Set = "happy_loop"
	SetPeck           Set = "peck"
	SetSuccess        Set = "success"
	SetSuccessReverse Set = "success_reverse"
)

// Sets lists every frame set in load order.
var Sets = []Set{SetLogo, SetHappyLoop, SetPeck, SetSuccess, SetSuccessReverse}

// frameTable maps each set to its asset names (PNG files without extension).
// HappyLoop ping-pongs through the table rather than at run time.
var frameTable = map[Set][]string{
	SetLogo:           {"crackleaf"},
	SetHappyLoop:      {"高兴1", "高兴2", "高兴3", "高兴4", "高兴3", "高兴2", "高兴1"},
	SetPeck:           {"啄1", "啄2"},
	SetSuccess:        {"成功1", "成功2", "成功3", "成功4", "成功5"},
	SetSuccessReverse: {"成功5", "成功4", "成功3", "成功2", "成功1"},
}

// Frames returns the asset names of set. Unknown sets fall back to the logo.
func Frames(set Set) []string {
	if f, ok := frameTable[set]; ok {
		return f
	}
	return frameTable[SetLogo]
}

// AssetNames returns each distinct asset name once, in first-use order.
func AssetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, set := range Sets {
		for _, name := range frameTable[set] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
