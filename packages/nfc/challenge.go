package nfc

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	DefaultChallengeTTL        = 2 * time.Minute
	DefaultMaxActiveChallenges = 10_000

	challengeBytes = 8
)

var ErrChallengeNotFound = ierrors.New("no active challenge for product")

// ChallengeStore keeps at most one outstanding challenge per product. Challenges
// expire after a TTL and are consumed by the first verification attempt.
type ChallengeStore struct {
	mutex      sync.Mutex
	challenges *expirable.LRU[string, string]
}

func NewChallengeStore(maxActive int, ttl time.Duration) *ChallengeStore {
	if maxActive <= 0 {
		maxActive = DefaultMaxActiveChallenges
	}
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}

	return &ChallengeStore{
		challenges: expirable.NewLRU[string, string](maxActive, nil, ttl),
	}
}

func generateChallenge() (string, error) {
	buf := make([]byte, challengeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", ierrors.Wrap(err, "failed to generate challenge")
	}

	return hex.EncodeToString(buf), nil
}

// Issue creates a new challenge for productID, replacing any previous one.
func (s *ChallengeStore) Issue(productID string) (string, error) {
	challenge, err := generateChallenge()
	if err != nil {
		return "", err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.challenges.Add(productID, challenge)

	return challenge, nil
}

// Consume removes and returns the active challenge of productID.
func (s *ChallengeStore) Consume(productID string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	challenge, ok := s.challenges.Get(productID)
	if !ok {
		return "", ErrChallengeNotFound
	}
	s.challenges.Remove(productID)

	return challenge, nil
}

// Active returns the number of outstanding challenges.
func (s *ChallengeStore) Active() int {
	return s.challenges.Len()
}
