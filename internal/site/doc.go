// Package site holds one adapter per supported novel site. An adapter turns
// a loaded page into a novel identifier, an optional chapter identifier and,
// on chapter pages, the chapter title and text. Adapters never touch storage.
package site
