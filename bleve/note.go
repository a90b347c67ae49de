package bleve

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/bmazoyer/scribe"
)

// NoteIndex indexes note titles and contents for full-text search.
type NoteIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it with its mapping if it does
// not exist yet.
func (s *NoteIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, indexMapping())
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *NoteIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func (s *NoteIndex) Index(note *scribe.Note) error {
	data := map[string]interface{}{
		"title":   note.Title,
		"content": note.Content,
	}

	return s.index.Index(strconv.Itoa(note.ID), data)
}

func (s *NoteIndex) Delete(id int) error {
	return s.index.Delete(strconv.Itoa(id))
}

func (s *NoteIndex) Search(search scribe.NoteSearch) (scribe.NoteSearchResults, error) {
	q := andQ(
		query.NewMatchAllQuery(),
		s.searchTitleOrContent(search.Q),
		s.searchIDs(search.IDs),
	)

	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.SortBy([]string{"_id"})

	if search.Limit > 0 {
		searchRequest.Size = int(search.Limit)
	}
	searchRequest.From = int(search.Offset)

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return scribe.NoteSearchResults{}, err
	}

	ids := make([]int, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		ids[i], err = strconv.Atoi(hit.ID)
		if err != nil {
			return scribe.NoteSearchResults{}, err
		}
	}

	return scribe.NoteSearchResults{
		IDs: ids,
		Pagination: scribe.Pagination{
			Total:  searchResults.Total,
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}

func indexMapping() *mapping.IndexMappingImpl {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = en.AnalyzerName

	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt("title", fm)
	dm.AddFieldMappingsAt("content", fm)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = dm
	return m
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

func (s *NoteIndex) searchTitleOrContent(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			s.searchField(word, "title"),
			s.searchField(word, "content"),
		))
	}

	return andQ(ands...)
}

func (s *NoteIndex) searchField(queryString, field string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(en.AnalyzerName)
	tokens := analyzer.Analyze([]byte(queryString))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		conjuncs[i] = &query.PrefixQuery{
			Prefix:   string(token.Term),
			FieldVal: field,
		}
	}

	return query.NewConjunctionQuery(conjuncs)
}

func (*NoteIndex) searchIDs(ids []int) query.Query {
	if len(ids) == 0 {
		return nil
	}

	docIDs := make([]string, len(ids))
	for i, id := range ids {
		docIDs[i] = strconv.Itoa(id)
	}
	return query.NewDocIDQuery(docIDs)
}
