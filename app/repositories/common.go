package repositories

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// PostCommentsIndexPrefix indexes comment ids by the post they reference:
	// idx:post_comments:<postID>:<commentID>
	PostCommentsIndexPrefix = "idx:post_comments:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
}

func commentKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", CommentKeyPrefix, id))
}

func postCommentsPrefix(postID int) []byte {
	return []byte(fmt.Sprintf("%s%d:", PostCommentsIndexPrefix, postID))
}

func postCommentsKey(postID, commentID int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", PostCommentsIndexPrefix, postID, commentID))
}

// readSequence returns the last id handed out for seqKey, or 0.
func readSequence(txn *badger.Txn, seqKey string) (int, error) {
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	}

	var id int
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt sequence %q: %d bytes", seqKey, len(val))
		}
		id = int(binary.BigEndian.Uint64(val))
		return nil
	})
	return id, err
}

func writeSequence(txn *badger.Txn, seqKey string, id int) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	if err := txn.Set([]byte(seqKey), buf); err != nil {
		return fmt.Errorf("failed to update sequence: %w", err)
	}
	return nil
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	id, err := readSequence(txn, seqKey)
	if err != nil {
		return 0, err
	}
	if id == math.MaxInt {
		return 0, fmt.Errorf("%s: %w", seqKey, ErrSequenceExhausted)
	}
	id++
	if err := writeSequence(txn, seqKey, id); err != nil {
		return 0, err
	}
	return id, nil
}

// bumpSequence moves the sequence forward so an explicitly chosen id is never
// handed out again by getNextID.
func bumpSequence(txn *badger.Txn, seqKey string, id int) error {
	current, err := readSequence(txn, seqKey)
	if err != nil {
		return err
	}
	if id <= current {
		return nil
	}
	return writeSequence(txn, seqKey, id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the JSON value stored at key into entity.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

func setEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}
