package main

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type exitingUI struct {
	err error
}

func (u exitingUI) Send(_ tea.Msg) {}

func (u exitingUI) Run() error { return u.err }

func TestRunUIDoesNotBlockWithoutReader(t *testing.T) {
	for _, program := range []UI{exitingUI{}, exitingUI{err: errors.New("no tty")}} {
		done := runUI(program)

		require.Eventually(t, func() bool { return len(done) == 1 }, time.Second, time.Millisecond)
		require.Equal(t, 1, cap(done))
	}
}
