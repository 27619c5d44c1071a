package inventory

// Query is the user-controlled part of the list state.
type Query struct {
	Category      string
	Search        string
	SortField     SortField
	SortDirection SortDirection
}

// Collect drives c without a renderer: it applies q, follows up to pages-1
// load-more rounds on the global listing, and returns the settled snapshot.
// The first failure stops the run and is returned with the snapshot.
func Collect(c *Controller, q Query, pages int) (Snapshot, error) {
	if q.SortField == "" {
		q.SortField = SortNone
	}
	if q.SortDirection == "" {
		q.SortDirection = Ascending
	}
	c.SetSort(q.SortField)
	c.SetDirection(q.SortDirection)

	c.SelectCategory(q.Category)
	c.Wait()
	if s := c.Snapshot(); s.Err != nil {
		return s, s.Err
	}

	for i := 1; i < pages; i++ {
		if !c.LoadMore() {
			break
		}
		c.Wait()
		if s := c.Snapshot(); s.Err != nil {
			return s, s.Err
		}
	}

	if q.Search != "" {
		c.SubmitSearch(q.Search)
		c.Wait()
	}

	s := c.Snapshot()
	return s, s.Err
}
