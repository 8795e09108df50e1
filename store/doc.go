// SPDX-License-Identifier: EPL-2.0

// Package store persists saved sounds, user categories and rendered audio
// blobs.
//
// Memory and FileStore implement Persistence and Categories; FileStore
// mirrors every change to a JSON file and rolls the change back when the
// file cannot be written. DirBlobStore implements BlobStore on a local
// directory. Failures are reported as *PersistenceError or *StorageError.
//
// Saving never updates a record in place: each save gets a fresh id of
// the form <userID>_<soundID>_<unixMillis>.
package store
