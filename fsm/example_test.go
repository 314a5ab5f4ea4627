package fsm_test

import (
	"errors"
	"fmt"

	"github.com/samdwyer/tickfsm/fsm"
)

type light int

const (
	red light = iota
	green
	amber
)

func (l light) String() string {
	return [...]string{"red", "green", "amber"}[l]
}

type lamp struct {
	fsm.Base
	color light
}

func (l *lamp) OnEnter(prev light) { fmt.Printf("%v on (was %v)\n", l.color, prev) }
func (l *lamp) OnExit(next light)  { fmt.Printf("%v off\n", l.color) }

func Example() {
	m := fsm.New[light]("crossing", fsm.WithName("signal"))
	_ = m.SetDefaultState(red, &lamp{color: red})
	_ = m.AddState(green, &lamp{color: green})
	_ = m.AddState(amber, &lamp{color: amber})

	_ = m.Deny(red, amber)
	_ = m.Deny(green, red)

	if err := m.ChangeState(amber); errors.Is(err, fsm.ErrTransitionDenied) {
		fmt.Println("red cannot go to amber")
	}
	_ = m.ChangeState(green)
	_ = m.ChangeState(amber)
	fmt.Println(m.CurrentID())

	// Output:
	// red cannot go to amber
	// red off
	// green on (was red)
	// green off
	// amber on (was green)
	// amber
}
