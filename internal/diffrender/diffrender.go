// Package diffrender renders a line-level unified diff between two
// blobs' content, grounded on the teacher's internal/repo/diff.go but
// operating purely on in-memory strings — there is no working
// directory or database to read from here, only the content of two
// blobs a caller already has in hand (typically the old and new sides
// of a StagingChange.Update).
package diffrender

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType classifies a rendered diff line.
type LineType int

const (
	LineContext LineType = iota
	LineAdd
	LineDelete
)

// Line is a single rendered line of a diff hunk.
type Line struct {
	Type    LineType
	Content string
}

// Hunk is a contiguous span of a diff, with enough leading/trailing
// context to be readable on its own.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Render computes the line-level diff between oldContent and
// newContent and groups it into hunks with contextLines of
// surrounding context (3 if contextLines <= 0).
func Render(oldContent, newContent string, contextLines int) []Hunk {
	if contextLines <= 0 {
		contextLines = 3
	}

	dmp := diffmatchpatch.New()
	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(oldContent, newContent)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, d := range diffs {
		var lineType LineType
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			lineType = LineContext
		case diffmatchpatch.DiffInsert:
			lineType = LineAdd
		case diffmatchpatch.DiffDelete:
			lineType = LineDelete
		}

		parts := strings.Split(d.Text, "\n")
		for i, part := range parts {
			if i == len(parts)-1 && part == "" {
				continue
			}
			lines = append(lines, Line{Type: lineType, Content: part})
		}
	}

	return groupIntoHunks(lines, contextLines)
}

func groupIntoHunks(lines []Line, contextLines int) []Hunk {
	if len(lines) == 0 {
		return nil
	}

	var hunks []Hunk
	var current *Hunk
	oldLine, newLine := 1, 1

	for i, line := range lines {
		isChange := line.Type != LineContext
		needsNewHunk := isChange && current == nil

		if isChange && current != nil {
			contextCount := 0
			for j := i - 1; j >= 0 && lines[j].Type == LineContext; j-- {
				contextCount++
			}
			if contextCount > contextLines*2 {
				hunks = append(hunks, *current)
				current = nil
				needsNewHunk = true
			}
		}

		if needsNewHunk {
			hunk := Hunk{OldStart: oldLine, NewStart: newLine}
			start := i - contextLines
			if start < 0 {
				start = 0
			}
			for j := start; j < i; j++ {
				if lines[j].Type == LineContext {
					hunk.Lines = append(hunk.Lines, lines[j])
					hunk.OldCount++
					hunk.NewCount++
				}
			}
			hunk.OldStart = oldLine - len(hunk.Lines)
			hunk.NewStart = newLine - len(hunk.Lines)
			current = &hunk
		}

		if current != nil {
			current.Lines = append(current.Lines, line)
			switch line.Type {
			case LineContext:
				current.OldCount++
				current.NewCount++
			case LineAdd:
				current.NewCount++
			case LineDelete:
				current.OldCount++
			}
		}

		switch line.Type {
		case LineContext:
			oldLine++
			newLine++
		case LineAdd:
			newLine++
		case LineDelete:
			oldLine++
		}
	}

	if current != nil {
		hunks = append(hunks, *current)
	}
	return hunks
}
