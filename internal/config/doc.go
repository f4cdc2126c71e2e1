// Package config loads the YAML run configuration: scoring weights and
// thresholds, and the settings of the suggestion source.
//
//	weights:
//	  similarity: 1.0
//	  accept_threshold: 0.70
//	  review_threshold: 0.50
//	suggester:
//	  kind: remote
//	  endpoint: https://llm.example.com/v1/chat/completions
//	  model: gpt-4.1-mini
//	  api_key_env: FIELDMAPPER_API_KEY
//	  max_retries: 3
//	  base_delay: 500ms
//
// Fields missing from the file keep the values of Default.
package config
