// SPDX-License-Identifier: EPL-2.0

// Package preview runs live previews on a shared output device.
//
// A Session is created once with the process-wide Output and closed at
// shutdown. Each Play call acquires a Handle keyed by sound id and walks
// it through the states
//
//	Idle -> Loading -> Armed -> Playing -> Idle
//
// Playing a key that is already active stops the old handle first, and
// Switch stops every other key so previews never overlap. A handle is
// released exactly once, whichever way it ends: the source running out,
// the preview window elapsing, an explicit Stop, or a failure while
// loading or starting. Release stops the voice and closes the source.
//
//	out, err := preview.NewOtoOutput(44100, 2, 0)
//	s := preview.NewSession(out)
//	defer s.Close()
//	h, err := s.Switch(ctx, "ui-click", loader)
//	<-h.Done()
package preview
