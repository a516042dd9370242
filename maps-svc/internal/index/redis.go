package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Longer strings (free text) are stored but not term-indexed.
const maxTermLength = 256

// RedisIndex keeps every document as a JSON string plus secondary sets:
//
//	{prefix}:{index}:doc:{id}                JSON source
//	{prefix}:{index}:ids                     all ids
//	{prefix}:{index}:term:{field}:{value}    ids per term field value
//	{prefix}:{index}:geo:{field}             GEO set per top-level {lat, lon} field
//
// Indexes configured with WithTermFields keep term sets for those fields
// only; other indexes keep one for every top-level scalar field.
type RedisIndex struct {
	client     *redis.Client
	prefix     string
	termFields map[string]map[string]struct{}
}

type Option func(*RedisIndex)

// WithTermFields limits the term-searchable fields of index to fields.
func WithTermFields(index string, fields ...string) Option {
	return func(x *RedisIndex) {
		set := make(map[string]struct{}, len(fields))
		for _, field := range fields {
			set[field] = struct{}{}
		}
		x.termFields[index] = set
	}
}

func NewRedisIndex(client *redis.Client, prefix string, opts ...Option) *RedisIndex {
	if prefix == "" {
		prefix = "idx"
	}
	x := &RedisIndex{
		client:     client,
		prefix:     prefix,
		termFields: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

func (x *RedisIndex) isTermField(index, field string) bool {
	fields, ok := x.termFields[index]
	if !ok {
		return true
	}
	_, ok = fields[field]
	return ok
}

var _ Index = (*RedisIndex)(nil)

func (x *RedisIndex) docKey(index, id string) string {
	return x.prefix + ":" + index + ":doc:" + id
}

func (x *RedisIndex) idsKey(index string) string {
	return x.prefix + ":" + index + ":ids"
}

func (x *RedisIndex) termKey(index, field, value string) string {
	return x.prefix + ":" + index + ":term:" + field + ":" + value
}

func (x *RedisIndex) geoKey(index, field string) string {
	return x.prefix + ":" + index + ":geo:" + field
}

func (x *RedisIndex) Get(ctx context.Context, index, id string) (json.RawMessage, error) {
	raw, err := x.client.Get(ctx, x.docKey(index, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// Index creates or replaces the document. An empty id gets a generated one.
func (x *RedisIndex) Index(ctx context.Context, index, id string, doc any) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	fields, err := toFields(doc)
	if err != nil {
		return "", err
	}

	previous, err := x.Get(ctx, index, id)
	if err != nil && !errors.Is(err, ErrDocumentNotFound) {
		return "", err
	}

	if err := x.write(ctx, index, id, fields, previous); err != nil {
		return "", err
	}
	return id, nil
}

// Update merges the top-level fields of partial into an existing document.
func (x *RedisIndex) Update(ctx context.Context, index, id string, partial any) error {
	current, err := x.Get(ctx, index, id)
	if err != nil {
		return err
	}

	fields, err := decodeFields(current)
	if err != nil {
		return fmt.Errorf("stored document %s is not an object: %w", id, err)
	}
	patch, err := toFields(partial)
	if err != nil {
		return err
	}
	for field, value := range patch {
		fields[field] = value
	}

	return x.write(ctx, index, id, fields, current)
}

func (x *RedisIndex) Bulk(ctx context.Context, index string, items []BulkItem) BulkResult {
	var result BulkResult
	for _, item := range items {
		if _, err := x.Index(ctx, index, item.ID, item.Doc); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Errorf("document %q: %w", item.ID, err))
			continue
		}
		result.Succeeded++
	}
	return result
}

func (x *RedisIndex) Search(ctx context.Context, index string, query Query) ([]Hit, error) {
	var (
		ids       []string
		allowed   map[string]struct{}
		distances map[string]float64
	)

	if len(query.Terms) > 0 {
		keys := make([]string, 0, len(query.Terms))
		for _, term := range query.Terms {
			if !x.isTermField(index, term.Field) {
				return nil, fmt.Errorf("field %q of index %s is not searchable", term.Field, index)
			}
			keys = append(keys, x.termKey(index, term.Field, term.Value))
		}
		members, err := x.client.SInter(ctx, keys...).Result()
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, nil
		}
		allowed = make(map[string]struct{}, len(members))
		for _, member := range members {
			allowed[member] = struct{}{}
		}
		ids = members
	}

	switch {
	case query.Geo != nil:
		locations, err := x.client.GeoRadius(ctx, x.geoKey(index, query.Geo.Field),
			query.Geo.Longitude, query.Geo.Latitude, &redis.GeoRadiusQuery{
				Radius:   query.Geo.RadiusMeters,
				Unit:     "m",
				WithDist: true,
				Sort:     "ASC",
			}).Result()
		if err != nil {
			return nil, err
		}

		ids = make([]string, 0, len(locations))
		distances = make(map[string]float64, len(locations))
		for _, location := range locations {
			if allowed != nil {
				if _, ok := allowed[location.Name]; !ok {
					continue
				}
			}
			ids = append(ids, location.Name)
			distances[location.Name] = location.Dist
		}
		sort.SliceStable(ids, func(i, j int) bool {
			if distances[ids[i]] != distances[ids[j]] {
				return distances[ids[i]] < distances[ids[j]]
			}
			return ids[i] < ids[j]
		})
	case len(query.Terms) == 0:
		members, err := x.client.SMembers(ctx, x.idsKey(index)).Result()
		if err != nil {
			return nil, err
		}
		ids = members
		sort.Strings(ids)
	default:
		sort.Strings(ids)
	}

	if query.Size > 0 && len(ids) > query.Size {
		ids = ids[:query.Size]
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = x.docKey(index, id)
	}
	values, err := x.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(ids))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			ID:       ids[i],
			Source:   json.RawMessage(raw),
			Distance: distances[ids[i]],
		})
	}
	return hits, nil
}

// write stores fields as the document and swaps the secondary entries of
// previous for the new ones in one MULTI/EXEC.
func (x *RedisIndex) write(ctx context.Context, index, id string, fields map[string]json.RawMessage, previous json.RawMessage) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	var old map[string]json.RawMessage
	if previous != nil {
		old, _ = decodeFields(previous)
	}

	_, err = x.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for field, value := range old {
			if term, ok := x.term(index, field, value); ok {
				pipe.SRem(ctx, x.termKey(index, field, term), id)
			}
			if _, ok := geoValue(value); ok {
				pipe.ZRem(ctx, x.geoKey(index, field), id)
			}
		}

		pipe.Set(ctx, x.docKey(index, id), payload, 0)
		pipe.SAdd(ctx, x.idsKey(index), id)

		for field, value := range fields {
			if term, ok := x.term(index, field, value); ok {
				pipe.SAdd(ctx, x.termKey(index, field, term), id)
			}
			if p, ok := geoValue(value); ok {
				pipe.GeoAdd(ctx, x.geoKey(index, field), &redis.GeoLocation{
					Name:      id,
					Longitude: p.Lon,
					Latitude:  p.Lat,
				})
			}
		}
		return nil
	})
	return err
}

func toFields(doc any) (map[string]json.RawMessage, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	fields, err := decodeFields(payload)
	if err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	return fields, nil
}

func decodeFields(raw []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("null document")
	}
	return fields, nil
}

func (x *RedisIndex) term(index, field string, raw json.RawMessage) (string, bool) {
	if !x.isTermField(index, field) {
		return "", false
	}
	return termValue(raw)
}

func termValue(raw json.RawMessage) (string, bool) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	switch v := value.(type) {
	case string:
		if len(v) > maxTermLength {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

type point struct {
	Lat float64
	Lon float64
}

func geoValue(raw json.RawMessage) (point, bool) {
	var candidate struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if len(raw) == 0 || raw[0] != '{' {
		return point{}, false
	}
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return point{}, false
	}
	if candidate.Lat == nil || candidate.Lon == nil {
		return point{}, false
	}
	p := point{Lat: *candidate.Lat, Lon: *candidate.Lon}
	if !GeoIndexable(p.Lat, p.Lon) {
		return point{}, false
	}
	return p, true
}
