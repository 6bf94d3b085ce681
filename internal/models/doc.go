// Package models defines domain entities and persistence interfaces for the chapter presenter.
//
// The package contains two categories of types:
//
// 1. Content: Plain structs decoded from story files
//   - [Story] : A titled, ordered sequence of chapters
//   - [Chapter] : One layer of the narrative (content pane + text pane)
//
// 2. Persistent Entities: Database-backed reading log records
//   - [Session] : One presenter run over a story
//   - [ChapterView] : A chapter becoming current during a session, with the input that caused it
//
// Persistent entities implement the Model interface providing IDs, timestamps and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
