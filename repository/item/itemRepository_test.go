package itemrepo

import (
	"testing"

	"shareit/util/page"

	"github.com/stretchr/testify/require"
)

func TestSearchQuery_AvailabilityBindsToBothMatches(t *testing.T) {
	q, args, err := searchQuery("drill", page.Page{Offset: 20, Limit: 10})
	require.NoError(t, err)

	// (name OR description) AND available, never name OR (description AND available)
	require.Regexp(t, `WHERE \(\(\("name" ILIKE \$1\) OR \("description" ILIKE \$2\)\) AND \("available" IS TRUE\)\)`, q)
	require.Contains(t, q, `ORDER BY "id" ASC`)
	require.Contains(t, q, "LIMIT $3 OFFSET $4")
	require.Len(t, args, 4)
	require.Equal(t, "%drill%", args[0])
	require.Equal(t, "%drill%", args[1])
}
