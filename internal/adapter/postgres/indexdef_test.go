package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndexColumns(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		indexdef string
		want     []string
	}{
		{
			"single column",
			"CREATE INDEX idx_orders_customer ON public.orders USING btree (customer_id)",
			[]string{"customer_id"},
		},
		{
			"composite preserves order",
			"CREATE INDEX idx_orders_customer_created ON public.orders USING btree (customer_id, created_at)",
			[]string{"customer_id", "created_at"},
		},
		{
			"unique index",
			"CREATE UNIQUE INDEX users_email_key ON public.users USING btree (email)",
			[]string{"email"},
		},
		{
			"primary key index",
			"CREATE UNIQUE INDEX orders_pkey ON public.orders USING btree (id)",
			[]string{"id"},
		},
		{
			"expression element",
			"CREATE INDEX idx_users_email_lower ON public.users USING btree (lower(email))",
			[]string{"lower(email)"},
		},
		{
			"mixed column and expression",
			"CREATE INDEX idx_users_tenant_email ON public.users USING btree (tenant_id, lower(email))",
			[]string{"tenant_id", "lower(email)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cols, err := parseIndexColumns(tt.indexdef)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cols)
		})
	}
}

func TestParseIndexColumns_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		indexdef string
	}{
		{"not SQL", "this is not sql"},
		{"not an index statement", "SELECT 1"},
		{"multiple statements", "SELECT 1; SELECT 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseIndexColumns(tt.indexdef)
			assert.Error(t, err)
		})
	}
}
