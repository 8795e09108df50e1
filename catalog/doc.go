// SPDX-License-Identifier: EPL-2.0

// Package catalog holds the sound descriptors: the built-in library of
// UI sounds and the CustomizableSound records users save.
//
// A CustomizableSound is either a transformed sound (Customization set)
// or a composition (Layers set). Validate rejects records with both.
package catalog
