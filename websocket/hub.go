package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is pushed to a shop's connected dashboard when something it cares
// about happens (new booking, new enquiry).
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	ShopEmail string
	Conn      *websocket.Conn
}

var clients = make(map[string]*websocket.Conn)
var clientsMu sync.RWMutex

var Register = make(chan *Client)
var Unregister = make(chan *Client)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Shop dashboard connected: %s", client.ShopEmail)
			clientsMu.Lock()
			clients[client.ShopEmail] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Shop dashboard disconnected: %s", client.ShopEmail)
			clientsMu.Lock()
			if conn, ok := clients[client.ShopEmail]; ok && conn == client.Conn {
				delete(clients, client.ShopEmail)
			}
			clientsMu.Unlock()
		}
	}
}

// NotifyShop delivers the event to the shop's dashboard if it is connected.
// Shops that are offline simply miss the live event; the data is still in
// their listings.
func NotifyShop(shopEmail string, event Event) {
	clientsMu.RLock()
	conn, ok := clients[shopEmail]
	clientsMu.RUnlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(event); err != nil {
		log.Printf("Error pushing event to shop %s: %v", shopEmail, err)
		conn.Close()
		clientsMu.Lock()
		if current, ok := clients[shopEmail]; ok && current == conn {
			delete(clients, shopEmail)
		}
		clientsMu.Unlock()
	}
}

// Handler keeps the connection registered until the client goes away.
func Handler(c *websocket.Conn) {
	shopEmail := c.Params("email")
	client := &Client{ShopEmail: shopEmail, Conn: c}

	Register <- client
	defer func() {
		Unregister <- client
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
