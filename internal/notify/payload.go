package notify

import (
	"fmt"

	"shop-service/internal/domain"
)

// Message is a chat payload in Slack block format. The same shape is accepted
// by incoming webhooks and chat.postMessage; only the latter needs Channel.
type Message struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks"`
}

type Block struct {
	Type     string      `json:"type"`
	Text     *BlockText  `json:"text,omitempty"`
	Fields   []BlockText `json:"fields,omitempty"`
	Elements []BlockText `json:"elements,omitempty"`
}

type BlockText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

func BuildOrderCreated(order *domain.Order, customer domain.Identity) Message {
	return Message{
		Text: ":shopping_cart: *New Order Created!*",
		Blocks: []Block{
			header("🛒 New Order Received"),
			{
				Type: "section",
				Fields: []BlockText{
					mrkdwn(fmt.Sprintf("*Order ID:*\n#%d", order.ID)),
					mrkdwn(fmt.Sprintf("*Customer:*\n%s", customer.Username)),
					mrkdwn(fmt.Sprintf("*Total Amount:*\n$%s", order.TotalAmount.StringFixed(2))),
					mrkdwn(fmt.Sprintf("*Items:*\n%d items", order.ItemsCount())),
				},
			},
			{
				Type: "section",
				Text: ptr(mrkdwn(fmt.Sprintf("*Shipping Address:*\n%s", order.ShippingAddress))),
			},
			{
				Type: "context",
				Elements: []BlockText{
					mrkdwn(fmt.Sprintf("Order created at %s", order.CreatedAt.Format("2006-01-02 15:04:05"))),
				},
			},
		},
	}
}

func BuildPaymentConfirmed(order *domain.Order, customer domain.Identity) Message {
	return Message{
		Text: ":white_check_mark: *Payment Confirmed!*",
		Blocks: []Block{
			header("✅ Payment Confirmed"),
			{
				Type: "section",
				Fields: []BlockText{
					mrkdwn(fmt.Sprintf("*Order ID:*\n#%d", order.ID)),
					mrkdwn(fmt.Sprintf("*Customer:*\n%s", customer.Username)),
					mrkdwn(fmt.Sprintf("*Amount Paid:*\n$%s", order.TotalAmount.StringFixed(2))),
					mrkdwn("*Status:*\nProcessing"),
				},
			},
			{
				Type: "context",
				Elements: []BlockText{
					mrkdwn(fmt.Sprintf("Payment confirmed at %s", order.UpdatedAt.Format("2006-01-02 15:04:05"))),
				},
			},
		},
	}
}

func header(text string) Block {
	return Block{
		Type: "header",
		Text: &BlockText{Type: "plain_text", Text: text, Emoji: true},
	}
}

func mrkdwn(text string) BlockText {
	return BlockText{Type: "mrkdwn", Text: text}
}

func ptr(t BlockText) *BlockText { return &t }
