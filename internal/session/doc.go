// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of one interactive shell session.
//
// A Session owns the working directory, the input buffer, the history and
// the single visible Output. Timed transitions (Output expiry, transient
// buffer messages) are Bubble Tea commands whose messages carry a token;
// a message whose token is no longer current is ignored, which is how a
// pending timer gets cancelled.
//
// # Key Types
//
//   - Session: the state object, created with New and ended with Dispose
//   - Output: the typed panel content with kind-specific lifetime
//   - Task: handle for a cancellable animation such as disco
//   - ExpireMsg, TransientClearMsg: timer messages fed back to the session
//
// # Usage
//
//	s := session.New()
//	cmd := s.Show(session.Text("hello"))  // arms a 5s expiry
//	...
//	case session.ExpireMsg:
//	    s.HandleExpire(msg)
package session
