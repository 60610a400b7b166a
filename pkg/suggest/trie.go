package suggest

// trieNode is one node of the indexed trie. The path from the root
// spells the prefix the node stands for. terminal is the id of the
// word ending exactly here, or noWord. topK caches the best-ranked
// live ids among all terminals at or below this node, never more than
// the trie's per-node bound.
type trieNode struct {
	children map[byte]*trieNode
	terminal int
	topK     []int
}

const noWord = -1

func newTrieNode() *trieNode {
	return &trieNode{terminal: noWord}
}

// trie is the character-keyed tree. Edges are created lazily and never
// pruned: once an edge exists it persists for the lifetime of the
// engine, even if the only word using it is removed.
type trie struct {
	root  *trieNode
	nodes int
}

func newTrie() *trie {
	return &trie{root: newTrieNode(), nodes: 1}
}

// walkOrCreate returns the node path for word, root through terminal
// node inclusive, creating missing edges along the way. Mutations use
// this path to maintain every cache the word participates in.
func (t *trie) walkOrCreate(word string) []*trieNode {
	path := make([]*trieNode, 0, len(word)+1)
	node := t.root
	path = append(path, node)
	for i := 0; i < len(word); i++ {
		c := word[i]
		if node.children == nil {
			node.children = make(map[byte]*trieNode)
		}
		child, ok := node.children[c]
		if !ok {
			child = newTrieNode()
			node.children[c] = child
			t.nodes++
		}
		node = child
		path = append(path, node)
	}
	return path
}

// walkReadOnly follows existing edges only, returning the node for
// prefix or false the moment an edge is missing.
func (t *trie) walkReadOnly(prefix string) (*trieNode, bool) {
	node := t.root
	for i := 0; i < len(prefix); i++ {
		child, ok := node.children[prefix[i]]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}
