package game

import "github.com/gdamore/tcell/v2"

// command is a key press decoded independently of the current mode.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdUp
	cmdDown
	cmdLeft
	cmdRight
	cmdPause
	cmdAttack
	cmdFlee
)

// delta returns the movement vector of a direction command.
func (c command) delta() (dx, dy int, ok bool) {
	switch c {
	case cmdUp:
		return 0, -1, true
	case cmdDown:
		return 0, 1, true
	case cmdLeft:
		return -1, 0, true
	case cmdRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// commandFor maps keyboard input to a command.
func commandFor(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyUp:
		return cmdUp
	case tcell.KeyDown:
		return cmdDown
	case tcell.KeyLeft:
		return cmdLeft
	case tcell.KeyRight:
		return cmdRight
	case tcell.KeyRune:
		return commandForRune(ev.Rune())
	}
	return cmdNone
}

func commandForRune(r rune) command {
	switch r {
	case 'q', 'Q':
		return cmdQuit
	case 'p', 'P', ' ':
		return cmdPause
	case 'a', 'A':
		return cmdAttack
	case 'f', 'F':
		return cmdFlee
	case 'k':
		return cmdUp
	case 'j':
		return cmdDown
	case 'h':
		return cmdLeft
	case 'l':
		return cmdRight
	}
	return cmdNone
}
