package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const episodePath = "/skip/1399/1/2"

func (s *testServer) submit(t *testing.T, introStart int) string {
	t.Helper()
	end := introStart + 60
	body := fmt.Sprintf(`{"intro":{"start":%d,"end":"%d:%02d"},"outro":{"start":1200,"end":1290}}`, introStart, end/60, end%60)
	rr := s.do(http.MethodPost, episodePath, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	sub := decode(t, rr)["submission"].(map[string]any)
	return sub["id"].(string)
}

func TestSkipSubmit(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, episodePath, `{"intro":{"start":"0:05","end":95},"outro":{"start":"20:00","end":"21:30"}}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	sub := body["submission"].(map[string]any)
	assert.Equal(t, map[string]any{"start": float64(5), "end": float64(95)}, sub["intro"])
	assert.Equal(t, map[string]any{"start": float64(1200), "end": float64(1290)}, sub["outro"])
	assert.Equal(t, float64(0), sub["votes"])
	assert.Equal(t, false, sub["verified"])
	assert.Regexp(t, `^1399:1:2-\d+-[0-9a-f]{8}$`, sub["id"])
}

func TestSkipSubmit_Rejects(t *testing.T) {
	s := newTestServer(t)
	cases := map[string]string{
		"not json":      `{`,
		"missing outro": `{"intro":{"start":0,"end":60}}`,
		"garbage time":  `{"intro":{"start":"abc","end":60},"outro":{"start":1200,"end":1290}}`,
		"reversed":      `{"intro":{"start":90,"end":"1:00"},"outro":{"start":1200,"end":1290}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := s.do(http.MethodPost, episodePath, body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decode(t, rr)["error"])
		})
	}

	rr := s.do(http.MethodPost, "/skip/abc/1/2", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = s.do(http.MethodPost, "/skip/0/1/2", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, s.skips.SubmissionCount())
}

func TestSkipBest(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, episodePath, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, false, body["found"])
	assert.Equal(t, "1399:1:2", body["episodeKey"])
	assert.Nil(t, body["best"])
	assert.Equal(t, []any{}, body["all"])

	s.submit(t, 10)
	second := s.submit(t, 20)
	rr = s.do(http.MethodPost, "/skip/vote", `{"id":"`+second+`","direction":"upvote"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, episodePath, "")
	body = decode(t, rr)
	assert.Equal(t, true, body["found"])
	assert.Equal(t, second, body["best"].(map[string]any)["id"])
	assert.Len(t, body["all"], 2)
}

func TestSkipVote(t *testing.T) {
	s := newTestServer(t)
	id := s.submit(t, 10)

	rr := s.do(http.MethodPost, "/skip/vote", `{"id":"`+id+`","direction":"downvote"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(-1), body["submission"].(map[string]any)["votes"])

	rr = s.do(http.MethodPost, "/skip/vote", `{"id":"`+id+`","direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/skip/vote", `{"direction":"upvote"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/skip/vote", `{"id":"nope","direction":"upvote"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSkipVerify(t *testing.T) {
	s := newTestServer(t)
	id := s.submit(t, 10)

	rr := s.do(http.MethodPost, "/skip/verify", `{"id":"`+id+`","secret":"wrong"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(http.MethodPost, "/skip/verify", `{"id":"`+id+`"}`, adminSecretHeader, secret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode(t, rr)["submission"].(map[string]any)["verified"])

	rr = s.do(http.MethodPost, "/skip/verify", `{"id":"missing","secret":"`+secret+`"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSkipPurge(t *testing.T) {
	s := newTestServer(t)
	s.submit(t, 10)
	s.submit(t, 20)
	rr := s.do(http.MethodPost, "/skip/1399/1/3", `{"intro":{"start":0,"end":60},"outro":{"start":1200,"end":1290}}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(http.MethodDelete, episodePath, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = s.do(http.MethodDelete, episodePath, `{"secret":"wrong"}`, adminSecretHeader, secret)
	assert.Equal(t, http.StatusForbidden, rr.Code, "body secret takes precedence")

	rr = s.do(http.MethodDelete, episodePath, "", adminSecretHeader, secret)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"success": true, "removed": float64(2)}, decode(t, rr))

	rr = s.do(http.MethodDelete, "/skip", `{"secret":"`+secret+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decode(t, rr)["removed"])
	assert.Zero(t, s.skips.SubmissionCount())
}
