// Package qindex holds the in-memory structures a paper session uses to file,
// order and de-duplicate generated questions. None of them lock; callers that
// share an instance across goroutines must serialise access themselves.
package qindex

import (
	"sort"
	"strings"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

type trieNode struct {
	children  map[string]*trieNode
	terminal  bool
	questions []*exam.Question
}

func newTrieNode() *trieNode {
	return &trieNode{children: map[string]*trieNode{}}
}

// TopicTrie files questions under whitespace-tokenised, lower-cased topic paths.
type TopicTrie struct {
	root   *trieNode
	topics int
}

func NewTopicTrie() *TopicTrie {
	return &TopicTrie{root: newTrieNode()}
}

// tokenize lower-cases and splits on whitespace. A blank topic yields a single
// empty token so it still maps to a stable node.
func tokenize(topic string) []string {
	words := strings.Fields(strings.ToLower(topic))
	if len(words) == 0 {
		return []string{""}
	}
	return words
}

func (t *TopicTrie) Insert(topic string, q *exam.Question) {
	node := t.root
	for _, w := range tokenize(topic) {
		child, ok := node.children[w]
		if !ok {
			child = newTrieNode()
			node.children[w] = child
		}
		node = child
	}
	if !node.terminal {
		node.terminal = true
		t.topics++
	}
	node.questions = append(node.questions, q)
}

func (t *TopicTrie) walk(topic string) (*trieNode, []string) {
	words := tokenize(topic)
	node := t.root
	for _, w := range words {
		child, ok := node.children[w]
		if !ok {
			return nil, nil
		}
		node = child
	}
	return node, words
}

// Search returns the questions filed at topic followed by those of every
// terminal child one level below it. Child order follows map iteration.
func (t *TopicTrie) Search(topic string) []*exam.Question {
	out := []*exam.Question{}
	node, _ := t.walk(topic)
	if node == nil {
		return out
	}
	if node.terminal {
		out = append(out, node.questions...)
	}
	for _, child := range node.children {
		if child.terminal {
			out = append(out, child.questions...)
		}
	}
	return out
}

// FindRelatedTopics lists every inserted topic at or below prefix, rebuilt from
// the lower-cased tokens. Siblings are visited in sorted token order.
func (t *TopicTrie) FindRelatedTopics(prefix string) []string {
	out := []string{}
	node, words := t.walk(prefix)
	if node == nil {
		return out
	}
	return collectTopics(node, strings.Join(words, " "), out)
}

func collectTopics(node *trieNode, path string, out []string) []string {
	if node.terminal {
		out = append(out, path)
	}
	keys := make([]string, 0, len(node.children))
	for k := range node.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = collectTopics(node.children[k], strings.TrimSpace(path+" "+k), out)
	}
	return out
}

// Len is the number of distinct terminal topics.
func (t *TopicTrie) Len() int { return t.topics }
