package lexer

import "testing"

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []Token
	}{
		{
			name:   "commands only",
			source: "+-><.,[]",
			want: []Token{
				{Type: TokenIncr, Offset: 0},
				{Type: TokenDecr, Offset: 1},
				{Type: TokenRight, Offset: 2},
				{Type: TokenLeft, Offset: 3},
				{Type: TokenOutput, Offset: 4},
				{Type: TokenInput, Offset: 5},
				{Type: TokenLoopStart, Offset: 6},
				{Type: TokenLoopEnd, Offset: 7},
			},
		},
		{
			name:   "comment bytes are dropped but offsets still count the source",
			source: "+ hello >",
			want: []Token{
				{Type: TokenIncr, Offset: 0},
				{Type: TokenRight, Offset: 8},
			},
		},
		{
			name:   "empty source",
			source: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScanner(tt.source).ScanTokens()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
