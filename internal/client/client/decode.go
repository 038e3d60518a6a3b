package client

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/client/httpclient"
)

type validatable[T any] interface {
	*T
	Validate() error
}

func decodeOne[T any, PT validatable[T]](endpoint string, resp *httpclient.Response) (*T, error) {
	var v T
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return nil, &SchemaError{Endpoint: endpoint, Err: err}
	}
	if err := PT(&v).Validate(); err != nil {
		return nil, &SchemaError{Endpoint: endpoint, Err: err}
	}
	return &v, nil
}

func decodeList[T any, PT validatable[T]](endpoint string, resp *httpclient.Response) ([]T, error) {
	var list []T
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, &SchemaError{Endpoint: endpoint, Err: err}
	}
	for i := range list {
		if err := PT(&list[i]).Validate(); err != nil {
			return nil, &SchemaError{Endpoint: endpoint, Err: fmt.Errorf("item %d: %w", i, err)}
		}
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}
