package avk

// Player selects one of the local players.
type Player uint8

const (
	Alpha Player = iota
	Bravo
	Charlie
	Delta
)

func (p Player) Valid() bool { return p < MaxPlayers }

func (p Player) String() string {
	switch p {
	case Alpha:
		return "alpha"
	case Bravo:
		return "bravo"
	case Charlie:
		return "charlie"
	case Delta:
		return "delta"
	default:
		return "player?"
	}
}

// Input is a logical button.
type Input uint8

const (
	DirUp Input = iota
	DirRight
	DirDown
	DirLeft

	FaceUp
	FaceRight
	FaceDown
	FaceLeft

	TriggerLeft
	TriggerRight

	Menu

	InputCount
)

func (in Input) Valid() bool { return in < InputCount }

var inputNames = [InputCount]string{
	"dir_up", "dir_right", "dir_down", "dir_left",
	"face_up", "face_right", "face_down", "face_left",
	"trigger_left", "trigger_right",
	"menu",
}

func (in Input) String() string {
	if !in.Valid() {
		return "input?"
	}
	return inputNames[in]
}
