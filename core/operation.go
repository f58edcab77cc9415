package core

import (
	"encoding/json"
	"fmt"
)

// Operation is one (name, body) pair of a broadcast batch. On the wire it is
// the two-element array form ["vote", {...}].
type Operation struct {
	Name string
	Body json.RawMessage
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("operation must be a [name, body] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &o.Name); err != nil {
		return fmt.Errorf("operation name: %w", err)
	}
	o.Body = append(json.RawMessage(nil), pair[1]...)
	return nil
}

func (o Operation) MarshalJSON() ([]byte, error) {
	body := o.Body
	if body == nil {
		body = json.RawMessage("{}")
	}
	return json.Marshal([]any{o.Name, body})
}

// Typed payloads for the recognized operation set. Only the fields needed to
// identify the acting account are required on the wire; the rest ride along so
// batches re-marshal faithfully.

type VoteOperation struct {
	Voter    string `json:"voter"`
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Weight   int16  `json:"weight"`
}

type CommentOperation struct {
	ParentAuthor   string `json:"parent_author"`
	ParentPermlink string `json:"parent_permlink"`
	Author         string `json:"author"`
	Permlink       string `json:"permlink"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	JSONMetadata   string `json:"json_metadata"`
}

type DeleteCommentOperation struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
}

type CommentOptionsOperation struct {
	Author               string `json:"author"`
	Permlink             string `json:"permlink"`
	MaxAcceptedPayout    Asset  `json:"max_accepted_payout"`
	PercentSteemDollars  uint16 `json:"percent_steem_dollars"`
	AllowVotes           bool   `json:"allow_votes"`
	AllowCurationRewards bool   `json:"allow_curation_rewards"`
}

type CustomJSONOperation struct {
	RequiredAuths        []string `json:"required_auths"`
	RequiredPostingAuths []string `json:"required_posting_auths"`
	ID                   string   `json:"id"`
	JSON                 string   `json:"json"`
}

type ClaimRewardBalanceOperation struct {
	Account     string `json:"account"`
	RewardSteem Asset  `json:"reward_steem"`
	RewardSBD   Asset  `json:"reward_sbd"`
	RewardVests Asset  `json:"reward_vests"`
}

type AccountWitnessVoteOperation struct {
	Account string `json:"account"`
	Witness string `json:"witness"`
	Approve bool   `json:"approve"`
}

type AccountWitnessProxyOperation struct {
	Account string `json:"account"`
	Proxy   string `json:"proxy"`
}

type AccountUpdate2Operation struct {
	Account             string `json:"account"`
	JSONMetadata        string `json:"json_metadata"`
	PostingJSONMetadata string `json:"posting_json_metadata"`
}

type TransferOperation struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Asset  `json:"amount"`
	Memo   string `json:"memo"`
}

// authorFunc reports whether user is the acting account of a decoded operation
// body. Implementations fail closed on undecodable bodies and missing fields.
type authorFunc func(body json.RawMessage, user string) bool

// operationAuthors is the explicit table mapping each recognized operation type
// to its author check. Adding a new operation type means adding one entry here;
// call sites never inspect operation bodies themselves.
var operationAuthors = map[string]authorFunc{
	"vote": func(body json.RawMessage, user string) bool {
		var op VoteOperation
		return json.Unmarshal(body, &op) == nil && op.Voter != "" && op.Voter == user
	},
	"comment": func(body json.RawMessage, user string) bool {
		var op CommentOperation
		return json.Unmarshal(body, &op) == nil && op.Author != "" && op.Author == user
	},
	"delete_comment": func(body json.RawMessage, user string) bool {
		var op DeleteCommentOperation
		return json.Unmarshal(body, &op) == nil && op.Author != "" && op.Author == user
	},
	"comment_options": func(body json.RawMessage, user string) bool {
		var op CommentOptionsOperation
		return json.Unmarshal(body, &op) == nil && op.Author != "" && op.Author == user
	},
	"custom_json": func(body json.RawMessage, user string) bool {
		var op CustomJSONOperation
		if json.Unmarshal(body, &op) != nil {
			return false
		}
		auths := append(append([]string(nil), op.RequiredAuths...), op.RequiredPostingAuths...)
		if len(auths) == 0 {
			return false
		}
		for _, auth := range auths {
			if auth != user {
				return false
			}
		}
		return true
	},
	"claim_reward_balance": func(body json.RawMessage, user string) bool {
		var op ClaimRewardBalanceOperation
		return json.Unmarshal(body, &op) == nil && op.Account != "" && op.Account == user
	},
	"account_witness_vote": func(body json.RawMessage, user string) bool {
		var op AccountWitnessVoteOperation
		return json.Unmarshal(body, &op) == nil && op.Account != "" && op.Account == user
	},
	"account_witness_proxy": func(body json.RawMessage, user string) bool {
		var op AccountWitnessProxyOperation
		return json.Unmarshal(body, &op) == nil && op.Account != "" && op.Account == user
	},
	"account_update2": func(body json.RawMessage, user string) bool {
		var op AccountUpdate2Operation
		return json.Unmarshal(body, &op) == nil && op.Account != "" && op.Account == user
	},
	"transfer": func(body json.RawMessage, user string) bool {
		var op TransferOperation
		return json.Unmarshal(body, &op) == nil && op.From != "" && op.From == user
	},
}

// recognizedOperations is the stable default scope ordering.
var recognizedOperations = []string{
	"vote",
	"comment",
	"delete_comment",
	"comment_options",
	"custom_json",
	"claim_reward_balance",
	"account_witness_vote",
	"account_witness_proxy",
	"account_update2",
	"transfer",
}

// RecognizedOperations returns the configured-default list of operation names.
func RecognizedOperations() []string {
	return append([]string(nil), recognizedOperations...)
}

// Recognized reports whether name is a known operation type.
func Recognized(name string) bool {
	_, ok := operationAuthors[name]
	return ok
}

// IsAuthor reports whether user is the acting account of the operation. Unknown
// operation types fail closed.
func IsAuthor(name string, body json.RawMessage, user string) bool {
	fn, ok := operationAuthors[name]
	if !ok {
		return false
	}
	return fn(body, user)
}
