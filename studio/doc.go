// SPDX-License-Identifier: EPL-2.0

// Package studio implements the user flows on top of the audio core:
// exporting, saving and deleting customized sounds and compositions,
// rendering variants, and previewing on a live session.
//
// Saves upload the rendered WAV first and store the record second. When
// the record cannot be stored the uploaded blob is deleted, so a failed
// save leaves nothing behind.
package studio
