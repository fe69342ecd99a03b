package bookingrepo

import (
	"testing"
	"time"

	"shareit/model"
	"shareit/util/page"

	"github.com/stretchr/testify/require"
)

func TestListQuery_States(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	p := page.Page{Offset: 0, Limit: 10}

	cases := []struct {
		state  model.BookingState
		want   []string
		absent []string
	}{
		{model.StateAll, nil, []string{`"b"."start_date" <`, `"b"."status" =`}},
		{model.StateCurrent, []string{`("b"."start_date" < $2)`, `("b"."end_date" > $3)`}, nil},
		{model.StatePast, []string{`("b"."end_date" < $2)`}, nil},
		{model.StateFuture, []string{`("b"."start_date" > $2)`}, nil},
		{model.StateWaiting, []string{`("b"."status" = $2)`}, nil},
		{model.StateRejected, []string{`("b"."status" = $2)`}, nil},
	}
	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			q, args, err := listQuery(Filter{BookerID: 2, State: tc.state, Now: now, Page: p})
			require.NoError(t, err)
			require.Contains(t, q, `("b"."booker_id" = $1)`)
			require.Contains(t, q, `ORDER BY "b"."start_date" DESC, "b"."id" DESC`)
			for _, w := range tc.want {
				require.Contains(t, q, w)
			}
			for _, a := range tc.absent {
				require.NotContains(t, q, a)
			}
			require.Equal(t, int64(2), args[0])
		})
	}
}

func TestListQuery_Owner(t *testing.T) {
	q, args, err := listQuery(Filter{OwnerID: 1, State: model.StateWaiting, Page: page.Page{Offset: 10, Limit: 10}})
	require.NoError(t, err)
	require.Contains(t, q, `("i"."owner_id" = $1)`)
	require.NotContains(t, q, `"b"."booker_id" =`)
	require.Equal(t, "WAITING", args[1])
}
