// Package db looks up score metadata in DynamoDB.
package db

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/reprise/constants"
	"github.com/jsphweid/reprise/model"
	"github.com/jsphweid/reprise/util"
)

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// NewStore connects to the configured endpoint. It returns nil and no error
// when no endpoint is configured.
func NewStore() (*Store, error) {
	endpoint := constants.GetMetadataEndpoint()
	if endpoint == "" {
		return nil, nil
	}
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetMetadataRegion()),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}
	return NewStoreWithClient(dynamodb.New(sess), constants.GetMetadataTable()), nil
}

func NewStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// GetMidiMetadatas fetches metadata for the given file names, keyed by file
// name. Files without metadata are left out.
func (s *Store) GetMidiMetadatas(names []string) (map[string]model.MidiMetadata, error) {
	res := make(map[string]model.MidiMetadata)
	// a batch may not ask for the same key twice
	seen := make(map[string]bool)
	var filenames []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			filenames = append(filenames, n)
		}
	}
	for start := 0; start < len(filenames); start += constants.MaxMetadataBatch {
		end := util.Min(start+constants.MaxMetadataBatch, len(filenames))
		if err := s.getBatch(filenames[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *Store) getBatch(filenames []string, res map[string]model.MidiMetadata) error {
	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			s.table: {Keys: keys},
		},
	}
	dbres, err := s.client.BatchGetItem(input)
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}

	for _, v := range dbres.Responses[s.table] {
		pk, ok := v["PK"]
		if !ok || pk.S == nil {
			continue
		}
		var m model.MidiMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			m.Year = uint(year)
		}
		m.Artist = stringAttr(v, "Artist")
		m.Release = stringAttr(v, "Release")
		m.Title = stringAttr(v, "Title")
		res[*pk.S] = m
	}
	return nil
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}
