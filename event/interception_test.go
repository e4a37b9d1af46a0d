package event

import "testing"

func strptr(s string) *string { return &s }

func TestMessageInterceptionMatches(t *testing.T) {
	tests := []struct {
		name string
		mi   MessageInterception
		msg  Message
		want bool
	}{
		{
			name: "source only, any target",
			mi:   MessageInterception{SourceAgent: "a"},
			msg:  Message{From: "a", To: "b"},
			want: true,
		},
		{
			name: "wrong source",
			mi:   MessageInterception{SourceAgent: "a"},
			msg:  Message{From: "x", To: "b"},
			want: false,
		},
		{
			name: "specific target matches",
			mi:   MessageInterception{SourceAgent: "a", TargetAgent: strptr("b")},
			msg:  Message{From: "a", To: "b"},
			want: true,
		},
		{
			name: "specific target mismatches",
			mi:   MessageInterception{SourceAgent: "a", TargetAgent: strptr("b")},
			msg:  Message{From: "a", To: "c"},
			want: false,
		},
		{
			name: "condition rejects",
			mi: MessageInterception{
				SourceAgent: "a",
				Condition:   func(m Message) bool { return false },
			},
			msg:  Message{From: "a", To: "b"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mi.Matches(tt.msg); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
