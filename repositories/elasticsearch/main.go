package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gavin/api/models/constants"
	"gavin/api/models/constants/status"
	"gavin/api/models/runs"
	"gavin/api/repositories"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/mitchellh/mapstructure"
)

const runsIndex = "gavin-runs"

/*
	Elasticsearch-backed RunRepository for multi node deployments.
	Documents are indexed by run id; the run's own Version field
	carries the optimistic lock (the conflict check here is
	read-then-index, i.e. best effort).
*/
type RunRepository struct {
	Es7Client *elasticsearch.Client
}

func NewRunRepository(es *elasticsearch.Client) *RunRepository {
	return &RunRepository{
		Es7Client: es,
	}
}

func (r *RunRepository) Save(run *runs.Run) error {
	run.Version = 1
	return r.index(run)
}

func (r *RunRepository) Update(run *runs.Run) error {
	stored, err := r.FindById(run.Id)
	if err != nil {
		return err
	}
	if stored.Version != run.Version {
		return repositories.ErrVersionConflict
	}

	run.Version++
	return r.index(run)
}

func (r *RunRepository) index(run *runs.Run) error {
	// Marshal the struct to JSON and check for errors
	b, err := json.Marshal(run)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      runsIndex,
		DocumentID: run.Id,
		Body:       strings.NewReader(string(b)),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), r.Es7Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index run '%s' : got '%s'", run.Id, res.Status())
	}

	return nil
}

func (r *RunRepository) FindById(id string) (*runs.Run, error) {
	req := esapi.GetRequest{
		Index:      runsIndex,
		DocumentID: id,
	}

	res, err := req.Do(context.Background(), r.Es7Client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, repositories.ErrRunNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to get run '%s' : got '%s'", id, res.Status())
	}

	// Deserialize the response into a map and
	// re-marshal the document source into a run
	var resMap map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&resMap); err != nil {
		return nil, err
	}

	return decodeRunSource(resMap["_source"])
}

func (r *RunRepository) FindByStatuses(statuses []constants.RunStatus) ([]*runs.Run, error) {
	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	// build the request body
	var buf bytes.Buffer
	query := map[string]interface{}{
		"size": 10000,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{{
					"terms": map[string]interface{}{
						"status": statusStrings,
					},
				}},
			},
		},
	}

	// encode the query
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		log.Printf("Error encoding query: %s\n", err)
		return nil, err
	}

	es := r.Es7Client
	res, searchErr := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(runsIndex),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
	)
	if searchErr != nil {
		return nil, searchErr
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to query runs by status : got '%s'", res.Status())
	}

	result := make(map[string]interface{})
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}

	// gather data from "hits"
	docsHits := result["hits"].(map[string]interface{})["hits"]
	allDocHits := []map[string]interface{}{}
	mapstructure.Decode(docsHits, &allDocHits)

	// grab _source for each hit
	matches := make([]*runs.Run, 0, len(allDocHits))
	for _, hit := range allDocHits {
		run, decodeErr := decodeRunSource(hit["_source"])
		if decodeErr != nil {
			log.Printf("failed to decode run document: %s\n", decodeErr)
			continue
		}
		matches = append(matches, run)
	}

	return matches, nil
}

func decodeRunSource(source interface{}) (*runs.Run, error) {
	byteSlice, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	var run runs.Run
	if err := json.Unmarshal(byteSlice, &run); err != nil {
		return nil, err
	}

	// normalize whatever casing the document carried
	run.Status = status.CastToRunStatus(string(run.Status))

	return &run, nil
}
