// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/siteshell/internal/directory"
	"github.com/jeranaias/siteshell/internal/session"
)

func TestSubmit_BlankLine(t *testing.T) {
	f := newFixture(t, nil)
	f.sess.SetBuffer("   ")
	assert.Nil(t, f.in.Submit("   "))
	assert.Empty(t, f.sess.History())
	assert.Empty(t, f.sess.Buffer())
}

func TestSubmit_UnknownCommandIsSilent(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Submit("cd about")
	f.in.Submit("echo before")
	epoch := f.sess.Epoch()

	f.sess.SetBuffer("sudo make me a sandwich")
	cmd := f.in.Submit("sudo make me a sandwich")

	assert.Nil(t, cmd)
	assert.Equal(t, []string{"cd about", "echo before", "sudo make me a sandwich"}, f.sess.History())
	assert.Equal(t, "before", f.sess.Output().Text)
	assert.Equal(t, directory.Path{"about"}, f.sess.WorkingDirectory())
	assert.Empty(t, f.sess.Buffer())
	assert.Equal(t, epoch, f.sess.Epoch())
}

func TestSubmit_UnknownCommandReported(t *testing.T) {
	f := newFixture(t, nil)
	f.ctx.Display.ReportUnknown = true
	f.in.Submit("sudo ls")
	out := f.sess.Output()
	assert.Equal(t, session.KindError, out.Kind)
	assert.Equal(t, "command not found: sudo", out.Text)
}

func TestSubmit_UnknownCommandKeepsDisco(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Submit("disco")
	f.in.Submit("nope")
	_, active := f.sess.ActiveTask()
	assert.True(t, active)
	assert.Empty(t, f.theme.restores)
}

func TestSubmit_SilentCommandClosesPreviousOutput(t *testing.T) {
	tests := []struct {
		name, line string
	}{
		{"cd", "cd about"},
		{"cd at root", "cd .."},
		{"section shortcut", "projects"},
		{"clear", "clear"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.in.Submit("help")
			require.Equal(t, session.KindHelp, f.sess.Output().Kind)
			helpExpiry := session.ExpireMsg{SessionID: f.sess.ID(), Token: f.sess.OutputToken()}

			f.in.Submit(tt.line)
			assert.True(t, f.sess.Output().IsZero())
			assert.Equal(t, session.Idle, f.sess.State())

			// The help timer is dead: it must not close a later output.
			f.in.Submit("echo later")
			assert.Nil(t, f.in.Update(helpExpiry))
			assert.Equal(t, "later", f.sess.Output().Text)
		})
	}
}

func TestSubmit_CaseInsensitiveDispatch(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Submit("PWD")
	assert.Equal(t, "/", f.sess.Output().Text)
}

func TestSubmit_ClearsBufferAndReturnsToOutputState(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Type("whoami")
	assert.Equal(t, session.AwaitingInput, f.sess.State())

	f.in.Submit("whoami")
	assert.Empty(t, f.sess.Buffer())
	assert.Equal(t, session.OutputVisible, f.sess.State())
}

func TestUpdate_Expire(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Submit("echo one")
	stale := session.ExpireMsg{SessionID: f.sess.ID(), Token: f.sess.OutputToken()}

	f.in.Submit("echo two")
	f.in.Update(stale)
	assert.Equal(t, "two", f.sess.Output().Text, "old timer must not close new output")

	f.in.Update(session.ExpireMsg{SessionID: f.sess.ID(), Token: f.sess.OutputToken()})
	assert.True(t, f.sess.Output().IsZero())
	assert.Equal(t, session.Idle, f.sess.State())
}

func TestUpdate_IgnoresForeignMessages(t *testing.T) {
	f := newFixture(t, nil)
	assert.Nil(t, f.in.Update("not ours"))
}

func TestStaleLoadIsDropped(t *testing.T) {
	release := make(chan struct{})
	f := newFixture(t, gatedIndex(release))

	cmd := f.in.Submit("cd blogs/Go Concurrency")
	require.Equal(t, session.KindLoading, f.sess.Output().Kind)

	f.in.Submit("pwd")
	close(release)
	f.pump(cmd, settle)

	assert.True(t, f.sess.WorkingDirectory().IsRoot())
	assert.Equal(t, "/", f.sess.Output().Text)
	assert.Empty(t, f.router.routes)
	assert.True(t, f.dir.Loaded(), "the fetch itself still populates the cache")
}

func TestType_Prefetch(t *testing.T) {
	f := newFixture(t, postsIndex())

	assert.Nil(t, f.in.Type("cd pr"))
	assert.Nil(t, f.in.Type("echo blogs/"))

	cmd := f.in.Type("cd blogs/")
	require.NotNil(t, cmd)
	assert.Nil(t, f.in.Type("cd blogs/h"), "one prefetch at a time")

	msgs := f.pump(cmd, settle)
	_, ok := findMsg[PrefetchDoneMsg](msgs)
	assert.True(t, ok)
	assert.True(t, f.dir.Loaded())
	assert.Equal(t, "llo World", f.in.Suggest("cd blogs/he"))
	assert.Nil(t, f.in.Type("cd blogs/x"), "already loaded")
}

func TestType_PrefetchInsideDynamicDir(t *testing.T) {
	f := newFixture(t, postsIndex())
	f.sess.SetWorkingDirectory(directory.Path{"blogs"})
	cmd := f.in.Type("c")
	require.NotNil(t, cmd)
	f.pump(cmd, settle)
	assert.True(t, f.dir.Loaded())
}

func TestType_PrefetchRetriesAfterFailure(t *testing.T) {
	f := newFixture(t, failingIndex())
	cmd := f.in.Type("cd blogs/")
	require.NotNil(t, cmd)
	f.pump(cmd, settle)
	assert.False(t, f.dir.Loaded())
	assert.NotNil(t, f.in.Type("cd blogs/a"))
}

func TestComplete_UpdatesBuffer(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, "projects", f.in.Complete("pr"))
	assert.Equal(t, "projects", f.sess.Buffer())
}

func TestDismiss(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Submit("help")
	f.in.Dismiss()
	assert.True(t, f.sess.Output().IsZero())
}

func TestPrompt(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, "Visitor@site:~ $", f.in.Prompt())

	f.ctx.Display.ShowGitBranch = true
	f.ctx.Display.GitBranch = "main"
	f.in.Submit("cd about")
	assert.Equal(t, "Visitor@site:~/about (main) $", f.in.Prompt())
}

func TestDisposedSessionIgnoresInput(t *testing.T) {
	f := newFixture(t, nil)
	f.sess.Dispose()
	assert.Nil(t, f.in.Submit("pwd"))
	assert.Empty(t, f.sess.History())
}
