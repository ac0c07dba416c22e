package sla

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMalformed indicates the document does not have the shape the loader
// expects (e.g. a sequence where a mapping is required).
var ErrMalformed = errors.New("malformed document")

// Load reads and parses the SLA document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sla: failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("sla: %s: %w", path, err)
	}
	return doc, nil
}

// Parse builds a Document from YAML (or JSON) bytes, keeping the
// declaration order of the metrics and plans mappings.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc := &Document{}
	top := resolve(&root)
	if isNull(top) {
		return doc, nil
	}

	pairs, err := mappingPairs(top, "document")
	if err != nil {
		return nil, err
	}

	for _, p := range pairs {
		switch p.key {
		case "x-gcp-monitoring":
			if doc.ProjectID, err = parseProjectID(p.value); err != nil {
				return nil, err
			}
		case "metrics":
			if doc.Metrics, err = parseMetrics(p.value); err != nil {
				return nil, err
			}
		case "plans":
			if doc.Plans, err = parsePlans(p.value); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}

type pair struct {
	key   string
	value *yaml.Node
}

// resolve unwraps document and alias nodes. A nil or empty document yields nil.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func mappingPairs(n *yaml.Node, path string) ([]pair, error) {
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected a mapping (line %d): %w", path, n.Line, ErrMalformed)
	}

	pairs := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, err := scalar(n.Content[i], path)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{key: key, value: n.Content[i+1]})
	}
	return pairs, nil
}

func sequence(n *yaml.Node, path string) ([]*yaml.Node, error) {
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: expected a list (line %d): %w", path, n.Line, ErrMalformed)
	}
	return n.Content, nil
}

// scalar returns the literal text of a scalar node, so that 80, "80" and
// 0.1 all arrive as the text the author wrote.
func scalar(n *yaml.Node, path string) (string, error) {
	n = resolve(n)
	if isNull(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%s: expected a scalar value (line %d): %w", path, n.Line, ErrMalformed)
	}
	return n.Value, nil
}

func parseProjectID(n *yaml.Node) (string, error) {
	pairs, err := mappingPairs(n, "x-gcp-monitoring")
	if err != nil {
		return "", err
	}
	for _, p := range pairs {
		if p.key == "projectId" {
			return scalar(p.value, "x-gcp-monitoring.projectId")
		}
	}
	return "", nil
}

func parseMetrics(n *yaml.Node) ([]Metric, error) {
	pairs, err := mappingPairs(n, "metrics")
	if err != nil {
		return nil, err
	}

	metrics := make([]Metric, 0, len(pairs))
	for _, p := range pairs {
		path := "metrics." + p.key
		fields, err := mappingPairs(p.value, path)
		if err != nil {
			return nil, err
		}

		m := Metric{Name: p.key}
		for _, f := range fields {
			var dst *string
			switch f.key {
			case "type":
				dst = &m.Type
			case "unit":
				dst = &m.Unit
			case "description":
				dst = &m.Description
			case "monitoringId":
				dst = &m.MonitoringID
			case "resourceType":
				dst = &m.ResourceType
			case "metricKind":
				dst = &m.MetricKind
			case "valueType":
				dst = &m.ValueType
			default:
				continue
			}
			if *dst, err = scalar(f.value, path+"."+f.key); err != nil {
				return nil, err
			}
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func parsePlans(n *yaml.Node) ([]Plan, error) {
	pairs, err := mappingPairs(n, "plans")
	if err != nil {
		return nil, err
	}

	plans := make([]Plan, 0, len(pairs))
	for _, p := range pairs {
		plan, err := parsePlan(p.key, p.value)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func parsePlan(name string, n *yaml.Node) (Plan, error) {
	path := "plans." + name
	plan := Plan{Name: name}

	fields, err := mappingPairs(n, path)
	if err != nil {
		return plan, err
	}

	for _, f := range fields {
		switch f.key {
		case "title":
			plan.Title, err = scalar(f.value, path+".title")
		case "guarantees":
			plan.Guarantees, err = parseGuarantees(f.value, path+".guarantees")
		case "serviceLevelObjectives":
			plan.Objectives, err = parseObjectives(f.value, path+".serviceLevelObjectives")
		case "x-support-policy":
			plan.SupportPolicy, err = parseSupportPolicy(f.value, path+".x-support-policy")
		}
		if err != nil {
			return plan, err
		}
	}
	return plan, nil
}

func parseObjectives(n *yaml.Node, path string) ([]Objective, error) {
	items, err := sequence(n, path)
	if err != nil {
		return nil, err
	}

	objectives := make([]Objective, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		fields, err := mappingPairs(item, itemPath)
		if err != nil {
			return nil, err
		}

		var o Objective
		for _, f := range fields {
			switch f.key {
			case "name":
				o.Name, err = scalar(f.value, itemPath+".name")
			case "priority":
				o.Priority, err = scalar(f.value, itemPath+".priority")
			case "guarantees":
				o.Guarantees, err = parseGuarantees(f.value, itemPath+".guarantees")
			}
			if err != nil {
				return nil, err
			}
		}
		objectives = append(objectives, o)
	}
	return objectives, nil
}

func parseSupportPolicy(n *yaml.Node, path string) (*SupportPolicy, error) {
	if isNull(resolve(n)) {
		return nil, nil
	}
	fields, err := mappingPairs(n, path)
	if err != nil {
		return nil, err
	}

	sp := &SupportPolicy{}
	for _, f := range fields {
		switch f.key {
		case "serviceLevelObjectives":
			sp.Objectives, err = parseObjectives(f.value, path+".serviceLevelObjectives")
		case "contactPoints":
			sp.ContactPoints, err = parseContactPoints(f.value, path+".contactPoints")
		}
		if err != nil {
			return nil, err
		}
	}
	return sp, nil
}

func parseContactPoints(n *yaml.Node, path string) ([]ContactPoint, error) {
	items, err := sequence(n, path)
	if err != nil {
		return nil, err
	}

	points := make([]ContactPoint, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		fields, err := mappingPairs(item, itemPath)
		if err != nil {
			return nil, err
		}

		var cp ContactPoint
		for _, f := range fields {
			switch f.key {
			case "displayName":
				cp.DisplayName, err = scalar(f.value, itemPath+".displayName")
			case "channels":
				cp.Channels, err = parseChannels(f.value, itemPath+".channels")
			}
			if err != nil {
				return nil, err
			}
		}
		points = append(points, cp)
	}
	return points, nil
}

func parseChannels(n *yaml.Node, path string) ([]ContactChannel, error) {
	items, err := sequence(n, path)
	if err != nil {
		return nil, err
	}

	channels := make([]ContactChannel, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		fields, err := mappingPairs(item, itemPath)
		if err != nil {
			return nil, err
		}

		var ch ContactChannel
		for _, f := range fields {
			switch f.key {
			case "type":
				ch.Type, err = scalar(f.value, itemPath+".type")
			case "url":
				ch.URL, err = scalar(f.value, itemPath+".url")
			}
			if err != nil {
				return nil, err
			}
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// parseGuarantees decodes a guarantee list. The variant is chosen by which
// key is present: metric (structured), then limit (legacy); anything else
// is a measurement expression.
func parseGuarantees(n *yaml.Node, path string) ([]GuaranteeSource, error) {
	items, err := sequence(n, path)
	if err != nil {
		return nil, err
	}

	guarantees := make([]GuaranteeSource, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		fields, err := mappingPairs(item, itemPath)
		if err != nil {
			return nil, err
		}

		values := make(map[string]string, len(fields))
		for _, f := range fields {
			v, err := scalar(f.value, itemPath+"."+f.key)
			if err != nil {
				// Nested values belong to fields the compiler never reads.
				continue
			}
			values[f.key] = v
		}

		guarantees = append(guarantees, guaranteeFrom(values))
	}
	return guarantees, nil
}

func guaranteeFrom(v map[string]string) GuaranteeSource {
	if _, ok := v["metric"]; ok {
		return Structured{
			Metric:   v["metric"],
			Operator: v["operator"],
			Value:    v["value"],
			Period:   v["period"],
		}
	}
	if _, ok := v["limit"]; ok {
		return Legacy{Limit: v["limit"]}
	}
	return Measurement{Expression: v["measurement"], Period: v["period"]}
}
