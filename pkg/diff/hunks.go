package diff

// computeHunks computes diff hunks using an LCS-based algorithm.
func computeHunks(orig, form []string, contextLines int) []Hunk {
	lcs := longestCommonSubsequence(orig, form)

	ops := buildDiffOps(orig, form, lcs)
	if len(ops) == 0 {
		return nil
	}

	return groupIntoHunks(ops, contextLines)
}

// diffOp represents a single diff operation.
type diffOp struct {
	kind    LineKind
	content string
}

// buildDiffOps builds a sequence of diff operations from original,
// formatted, and their LCS.
func buildDiffOps(orig, form, lcs []string) []diffOp {
	var ops []diffOp
	origIdx, formIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || formIdx < len(form) {
		// If both match the LCS, it's a context line.
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && formIdx < len(form) &&
			orig[origIdx] == lcs[lcsIdx] && form[formIdx] == lcs[lcsIdx] {
			ops = append(ops, diffOp{kind: LineContext, content: orig[origIdx]})
			origIdx++
			formIdx++
			lcsIdx++
			continue
		}

		// Remove lines from original that aren't in the LCS.
		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: LineRemove, content: orig[origIdx]})
			origIdx++
		}

		// Add lines from formatted that aren't in the LCS.
		for formIdx < len(form) && (lcsIdx >= len(lcs) || form[formIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: LineAdd, content: form[formIdx]})
			formIdx++
		}
	}

	return ops
}

// groupIntoHunks groups diff operations into hunks with context lines.
func groupIntoHunks(ops []diffOp, contextLines int) []Hunk {
	// Find ranges of changes (non-context lines).
	type changeRange struct {
		start, end int // Indices into ops.
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, op := range ops {
		isChange := op.kind != LineContext
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	if len(ranges) == 0 {
		return nil
	}

	// Merge ranges that are close together and build hunks.
	var hunks []Hunk

	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) {
			gap := ranges[mergeEnd].start - ranges[mergeEnd-1].end
			if gap > contextLines*2 {
				break
			}
			mergeEnd++
		}

		hunk := buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end, contextLines)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}

		rangeIdx = mergeEnd
	}

	return hunks
}

// buildHunk builds a single hunk from a range of operations, expanded
// to include surrounding context.
func buildHunk(ops []diffOp, changeStart, changeEnd, contextLines int) Hunk {
	start := changeStart - contextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + contextLines
	if end > len(ops) {
		end = len(ops)
	}

	hunk := Hunk{}

	// Find original and formatted start positions.
	origStart := 1
	formStart := 1
	for opIdx := range start {
		if ops[opIdx].kind != LineAdd {
			origStart++
		}
		if ops[opIdx].kind != LineRemove {
			formStart++
		}
	}
	hunk.OriginalStart = origStart
	hunk.FormattedStart = formStart

	for i := start; i < end; i++ {
		op := ops[i]
		hunk.Lines = append(hunk.Lines, Line{Kind: op.kind, Content: op.content})

		switch op.kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.FormattedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.FormattedCount++
		}
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two string slices.
func longestCommonSubsequence(orig, form []string) []string {
	origLen, formLen := len(orig), len(form)
	if origLen == 0 || formLen == 0 {
		return nil
	}

	// Build DP table.
	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, formLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= formLen; col++ {
			if orig[row-1] == form[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	// Backtrack to recover the subsequence.
	lcs := make([]string, 0, dp[origLen][formLen])
	row, col := origLen, formLen
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == form[col-1]:
			lcs = append(lcs, orig[row-1])
			row--
			col--
		case dp[row-1][col] >= dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	// Reverse in place.
	for i, j := 0, len(lcs)-1; i < j; i, j = i+1, j-1 {
		lcs[i], lcs[j] = lcs[j], lcs[i]
	}

	return lcs
}
