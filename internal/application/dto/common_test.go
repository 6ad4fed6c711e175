package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	cases := []struct {
		name       string
		in         dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"ceros", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"límite negativo", dto.PageRequest{Limit: -5, Offset: -1}, dto.DefaultPageLimit, 0},
		{"dentro del rango", dto.PageRequest{Limit: 50, Offset: 10}, 50, 10},
		{"en el máximo", dto.PageRequest{Limit: 100}, 100, 0},
		{"por encima del máximo", dto.PageRequest{Limit: 5000, Offset: 3}, dto.MaxPageLimit, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}
