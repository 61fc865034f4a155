package infrastructure

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"artisan/internal/pkg/httpclient"
	"artisan/internal/service/catalog/domain"
	"artisan/internal/service/catalog/port"
)

// RemoteProductRepository 通过可追踪的 HTTP 客户端访问远端商品 API。
// 这是对约定中 REST 后端的适配，只读；仓库里并不存在那个后端，
// 配置了 base_url 且后端不可达时错误会原样向上传递。
type RemoteProductRepository struct {
	client  *httpclient.Client
	baseURL string
}

func NewRemoteProductRepository(client *httpclient.Client, baseURL string) *RemoteProductRepository {
	return &RemoteProductRepository{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *RemoteProductRepository) List(ctx context.Context, category string) ([]domain.Product, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	body, err := r.client.GetJSON(ctx, r.baseURL+"/products", params)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: list products from remote api")
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, errors.Wrap(err, "catalog: decode product list")
	}
	return products, nil
}

func (r *RemoteProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	body, err := r.client.GetJSON(ctx, r.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "catalog: get product from remote api")
	}

	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return domain.Product{}, errors.Wrap(err, "catalog: decode product")
	}
	if product.ID == "" {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

var _ port.Reader = (*RemoteProductRepository)(nil)
