package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakastein/masktext/rule"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []rule.Rule
		wantErr error
	}{
		{
			name:  "All",
			input: []string{"password=all"},
			want:  []rule.Rule{{Name: "password", Fields: "password", Method: rule.MethodAll}},
		},
		{
			name:  "Prefix",
			input: []string{"*.card=prefix:4"},
			want:  []rule.Rule{{Name: "*.card", Fields: "*.card", Method: rule.MethodPrefix, Until: 4}},
		},
		{
			name:  "Percentage with min chars",
			input: []string{"token=percentage:80:3"},
			want:  []rule.Rule{{Name: "token", Fields: "token", Method: rule.MethodPercentage, Percentage: 80, MinChars: 3}},
		},
		{
			name:  "Percentage without min chars",
			input: []string{"token=percentage:80"},
			want:  []rule.Rule{{Name: "token", Fields: "token", Method: rule.MethodPercentage, Percentage: 80}},
		},
		{
			name:  "Regex",
			input: []string{"*.email=regex:1:^([^@]+)@"},
			want:  []rule.Rule{{Name: "*.email", Fields: "*.email", Method: rule.MethodRegex, Group: 1, Pattern: "^([^@]+)@"}},
		},
		{
			name:  "Regex containing colons",
			input: []string{"url=regex:2:(https?)://([^/]+)"},
			want:  []rule.Rule{{Name: "url", Fields: "url", Method: rule.MethodRegex, Group: 2, Pattern: "(https?)://([^/]+)"}},
		},
		{
			name:  "Several rules keep order",
			input: []string{"password=all", "pin=prefix:1"},
			want: []rule.Rule{
				{Name: "password", Fields: "password", Method: rule.MethodAll},
				{Name: "pin", Fields: "pin", Method: rule.MethodPrefix, Until: 1},
			},
		},
		{name: "Empty input", input: []string{}, want: []rule.Rule{}},
		{name: "Missing equal sign", input: []string{"password"}, wantErr: rule.ErrInvalidRule},
		{name: "Missing fields", input: []string{"=all"}, wantErr: rule.ErrInvalidRule},
		{name: "Unknown method", input: []string{"a=hash"}, wantErr: rule.ErrUnknownMethod},
		{name: "All with arguments", input: []string{"a=all:1"}, wantErr: rule.ErrInvalidRule},
		{name: "Prefix without length", input: []string{"a=prefix"}, wantErr: rule.ErrInvalidRule},
		{name: "Prefix with text length", input: []string{"a=prefix:x"}, wantErr: rule.ErrInvalidRule},
		{name: "Prefix with negative length", input: []string{"a=prefix:-1"}, wantErr: rule.ErrInvalidRule},
		{name: "Percentage over 100", input: []string{"a=percentage:101"}, wantErr: rule.ErrInvalidRule},
		{name: "Percentage over byte range", input: []string{"a=percentage:300"}, wantErr: rule.ErrInvalidRule},
		{name: "Regex without expression", input: []string{"a=regex:1"}, wantErr: rule.ErrInvalidRule},
		{name: "Regex with empty expression", input: []string{"a=regex:1:"}, wantErr: rule.ErrInvalidRule},
		{name: "Regex with text group", input: []string{"a=regex:x:abc"}, wantErr: rule.ErrInvalidRule},
		{name: "Bad glob", input: []string{"[a-=all"}, wantErr: rule.ErrInvalidRule},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rule.Parse(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseAndMask(t *testing.T) {
	rules, err := rule.Parse([]string{
		"password=all",
		"*.card=prefix:4",
		"token=percentage:20:3",
		"note=regex:2:([a-z].*) (mask) ([a-z].*)",
	})
	require.NoError(t, err)

	set, err := rule.New(rules)
	require.NoError(t, err)
	require.Equal(t, 4, set.Len())

	assert.Equal(t, "*******", set.Mask("db.password", "hunter2"))
	assert.Equal(t, "4111************", set.Mask("billing.card", "4111111111111111"))
	assert.Equal(t, "text to ma**", set.Mask("token", "text to mask"))
	assert.Equal(t, "text to **** on group", set.Mask("note", "text to mask on group"))
	assert.Equal(t, "visible", set.Mask("comment", "visible"))
}
