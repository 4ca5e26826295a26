package client

import (
	"strings"
	"time"

	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/tokens"
	"golang.org/x/crypto/bcrypt"
)

func clientFromDbType(table *tables.ClientTable) *Client {
	return &Client{
		id:           table.ID,
		clientID:     table.ClientID,
		clientSecret: table.ClientSecret,
		name:         table.Name,
		scopes:       strings.Fields(table.Scopes),
		retiredOn:    table.RetiredOn,
		createdAt:    table.CreatedAt,
	}
}

// Client is a registered consumer of the token endpoint
type Client struct {
	id           int
	clientID     string
	clientSecret *string
	name         string
	scopes       []string
	retiredOn    *time.Time
	createdAt    time.Time
}

func (c *Client) ID() int {
	return c.id
}

func (c *Client) ClientID() string {
	return c.clientID
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Scopes() []string {
	return c.scopes
}

func (c *Client) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Client) IsRetired() bool {
	return c.retiredOn != nil
}

func (c *Client) RetiredOn() *time.Time {
	return c.retiredOn
}

// HasSecret is false for public clients
func (c *Client) HasSecret() bool {
	return c.clientSecret != nil
}

func (c *Client) ValidateClientSecret(input string) bool {
	//no secret set
	if c.clientSecret == nil {
		return true
	}
	res := bcrypt.CompareHashAndPassword([]byte(*c.clientSecret), []byte(input))
	return res == nil
}

// AreScopesCovered checks if the requested space delimited scopes are all registered for the client
func (c *Client) AreScopesCovered(scopes string) bool {
	return tokens.ScopesCovered(scopes, strings.Join(c.scopes, " "))
}
