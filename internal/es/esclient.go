package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/bluekeys/repair_shop/internal/config"
)

const PartsIndex = "parts"

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// IndexPart writes or replaces one document in the parts index.
func IndexPart(ctx context.Context, client *elasticsearch.Client, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("index part: %w", err)
	}

	res, err := client.Index(
		PartsIndex,
		bytes.NewReader(data),
		client.Index.WithDocumentID(id),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index part: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index part: %s", res.Status())
	}
	return nil
}

func DeletePart(ctx context.Context, client *elasticsearch.Client, id string) error {
	res, err := client.Delete(
		PartsIndex,
		id,
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete part: %s", res.Status())
	}
	return nil
}
