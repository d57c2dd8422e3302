package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"matches": []}`,
			want:  `{"matches": []}`,
		},
		{
			name:  "fenced json",
			input: "```json\n{\"matches\": [{\"decisionId\": \"d1\"}]}\n```",
			want:  `{"matches": [{"decisionId": "d1"}]}`,
		},
		{
			name:  "surrounding prose",
			input: "Here is the result:\n{\"consequences\": []}\nHope that helps!",
			want:  `{"consequences": []}`,
		},
		{
			name:  "nested braces inside strings",
			input: `{"matches": [{"message": "a {weird} value"}]}`,
			want:  `{"matches": [{"message": "a {weird} value"}]}`,
		},
		{
			name:  "array",
			input: `[1, 2, 3]`,
			want:  `[1, 2, 3]`,
		},
		{
			name:    "no json at all",
			input:   "sorry, I cannot help with that",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	resp, err := ParseJSONResponse[SimilarityResponse]("```json\n{\"matches\": [{\"decisionId\": \"d1\", \"similar_decision_id\": \"d2\", \"similarity_score\": 0.5}]}\n```")
	require.NoError(t, err)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "d1", resp.Matches[0].DecisionID)
}

func TestParseJSONResponseWrongShape(t *testing.T) {
	_, err := ParseJSONResponse[SimilarityResponse](`{"matches": "nope"}`)
	assert.Error(t, err)
}
