package ast_test

import (
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/ast"
	"go.followtheprocess.codes/vnscript/internal/syntax/token"
)

func TestExpression(t *testing.T) {
	tests := []struct {
		name      string         // Name of the test case
		expr      ast.Expression // Expression under test
		word      string         // Expected leading word
		args      string         // Expected arguments
		argsStart int            // Expected absolute offset of args
		kind      token.Kind     // Expected keyword kind
	}{
		{
			name:      "label",
			expr:      ast.Expression{Content: `label intro (text "hi")`, Start: 10, End: 35, ContentStart: 11},
			word:      "label",
			args:      `intro (text "hi")`,
			argsStart: 17,
			kind:      token.Label,
		},
		{
			name:      "start dialogue",
			expr:      ast.Expression{Content: "start-dialogue  intro", Start: 0, End: 23, ContentStart: 1},
			word:      "start-dialogue",
			args:      "intro",
			argsStart: 17,
			kind:      token.StartDialogue,
		},
		{
			name:      "keyword only",
			expr:      ast.Expression{Content: "set", Start: 0, End: 5, ContentStart: 1},
			word:      "set",
			args:      "",
			argsStart: 4,
			kind:      token.Set,
		},
		{
			name:      "empty",
			expr:      ast.Expression{Content: "", Start: 0, End: 2, ContentStart: 1},
			word:      "",
			args:      "",
			argsStart: 1,
			kind:      token.Other,
		},
		{
			name:      "annotation is not a top level keyword",
			expr:      ast.Expression{Content: "bg room.png", Start: 3, End: 16, ContentStart: 4},
			word:      "bg",
			args:      "room.png",
			argsStart: 7,
			kind:      token.Other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, args, argsStart := tt.expr.Head()

			test.Equal(t, word, tt.word)
			test.Equal(t, args, tt.args)
			test.Equal(t, argsStart, tt.argsStart)
			test.Equal(t, tt.expr.Keyword(), tt.kind)
			test.Equal(t, tt.expr.Span(), syntax.Span{Start: tt.expr.Start, End: tt.expr.End})
		})
	}
}
