package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenantA = "tenant-a"
	testTenantB = "tenant-b"
	testSeller  = "seller-1"
)

func sellerActor(tenantID string) domain.Actor {
	return domain.Actor{UserID: testSeller, TenantID: tenantID, Roles: []string{domain.RoleSeller}}
}

// categoryFixture arma el caso de uso sobre los repos en memoria compartidos.
func categoryFixture() (*usecase.CategoryUseCase, *memory.CategoryRepo, *memory.ProductRepo) {
	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()
	tx := memory.NewTxRunner(categories, products)
	return usecase.NewCategoryUseCase(categories, products, tx), categories, products
}

func mustCreateCategory(t *testing.T, uc *usecase.CategoryUseCase, tenantID, name, parentID string) *dto.CategoryResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), sellerActor(tenantID), dto.CreateCategoryRequest{
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err, "la categoría %q debe crearse sin error", name)
	require.NotNil(t, out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_SinRol_Retorna_Unauthorized(t *testing.T) {
	uc, _, _ := categoryFixture()
	actor := domain.Actor{UserID: "buyer-1", TenantID: testTenantA, Roles: []string{"BUYER"}}

	_, err := uc.Create(context.Background(), actor, dto.CreateCategoryRequest{Name: "Electrónica"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"crear categoría sin rol SELLER/ADMIN debe fallar")
}

func TestCategoryCreate_NombreDuplicadoMismoTenant_Conflicto(t *testing.T) {
	uc, _, _ := categoryFixture()
	mustCreateCategory(t, uc, testTenantA, "Electrónica", "")

	_, err := uc.Create(context.Background(), sellerActor(testTenantA), dto.CreateCategoryRequest{Name: "Electrónica"})
	assert.ErrorIs(t, err, domain.ErrNameConflict)
}

func TestCategoryCreate_MismoNombreOtroTenant_Permitido(t *testing.T) {
	uc, _, _ := categoryFixture()
	mustCreateCategory(t, uc, testTenantA, "Electrónica", "")

	out, err := uc.Create(context.Background(), sellerActor(testTenantB), dto.CreateCategoryRequest{Name: "Electrónica"})
	require.NoError(t, err, "la unicidad de nombre es por tenant, no global")
	assert.Equal(t, testTenantB, out.TenantID)
}

func TestCategoryCreate_PadreInexistente_NotFound(t *testing.T) {
	uc, _, _ := categoryFixture()

	_, err := uc.Create(context.Background(), sellerActor(testTenantA), dto.CreateCategoryRequest{
		Name:     "Celulares",
		ParentID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryCreate_PadreDeOtroTenant_NotFound(t *testing.T) {
	uc, _, _ := categoryFixture()
	foreign := mustCreateCategory(t, uc, testTenantB, "Electrónica", "")

	_, err := uc.Create(context.Background(), sellerActor(testTenantA), dto.CreateCategoryRequest{
		Name:     "Celulares",
		ParentID: foreign.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"una categoría de otro tenant no puede ser padre")
}

func TestCategoryCreate_NombreVacio_InvalidInput(t *testing.T) {
	uc, _, _ := categoryFixture()

	_, err := uc.Create(context.Background(), sellerActor(testTenantA), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas: GetByID, árbol e hijas
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryGetByID_IncluyeHijasDirectas(t *testing.T) {
	uc, _, _ := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Electrónica", "")
	child := mustCreateCategory(t, uc, testTenantA, "Celulares", root.ID)

	out, err := uc.GetByID(root.ID, testTenantA)
	require.NoError(t, err)
	assert.Equal(t, []string{child.ID}, out.ChildrenIDs)
}

func TestCategoryGetByID_OtroTenant_NotFound(t *testing.T) {
	uc, _, _ := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Electrónica", "")

	_, err := uc.GetByID(root.ID, testTenantB)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Jerarquía A→B→C: el árbol debe anidar recursivamente y GetChildren
// devolver sólo las hijas directas.
func TestCategoryTree_JerarquiaDeTresNiveles(t *testing.T) {
	uc, _, _ := categoryFixture()
	a := mustCreateCategory(t, uc, testTenantA, "A", "")
	b := mustCreateCategory(t, uc, testTenantA, "B", a.ID)
	c := mustCreateCategory(t, uc, testTenantA, "C", b.ID)

	tree, err := uc.GetTree(testTenantA)
	require.NoError(t, err)
	require.Len(t, tree, 1, "sólo A es raíz")
	assert.Equal(t, a.ID, tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, b.ID, tree[0].Children[0].ID)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, c.ID, tree[0].Children[0].Children[0].ID)

	children, err := uc.GetChildren(a.ID, testTenantA)
	require.NoError(t, err)
	require.Len(t, children, 1, "GetChildren devuelve hijas directas, no descendientes")
	assert.Equal(t, b.ID, children[0].ID)
}

// Sólo el auto-parentesco directo se rechaza en escritura, así que un ciclo
// más largo (A→B→A) es construible vía Update. GetTree debe retornar igual:
// los nodos del ciclo no tienen raíz y quedan fuera del bosque, y la guarda
// de visitados impide recursar infinito sobre un grafo malformado.
func TestCategoryTree_CicloAlmacenado_Termina(t *testing.T) {
	uc, _, _ := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Raíz", "")
	a := mustCreateCategory(t, uc, testTenantA, "A", "")
	b := mustCreateCategory(t, uc, testTenantA, "B", a.ID)

	// Cierra el ciclo: A pasa a ser hija de B (B ya es hija de A).
	_, err := uc.Update(context.Background(), sellerActor(testTenantA), a.ID, dto.UpdateCategoryRequest{
		Name:     "A",
		ParentID: b.ID,
	})
	require.NoError(t, err, "el ciclo indirecto no se rechaza en escritura")

	tree, err := uc.GetTree(testTenantA)
	require.NoError(t, err)
	require.Len(t, tree, 1, "sólo la raíz genuina aparece en el bosque")
	assert.Equal(t, root.ID, tree[0].ID)
	assert.Empty(t, tree[0].Children)
}

func TestCategoryTree_TenantVacio_BosqueVacio(t *testing.T) {
	uc, _, _ := categoryFixture()

	tree, err := uc.GetTree(testTenantA)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestCategoryGetChildren_PadreInexistente_NotFound(t *testing.T) {
	uc, _, _ := categoryFixture()

	_, err := uc.GetChildren("no-existe", testTenantA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryUpdate_AutoParentesco_InvalidParent(t *testing.T) {
	uc, _, _ := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Electrónica", "")

	_, err := uc.Update(context.Background(), sellerActor(testTenantA), root.ID, dto.UpdateCategoryRequest{
		Name:     "Electrónica",
		ParentID: root.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)
}

func TestCategoryUpdate_NombreTomado_Conflicto(t *testing.T) {
	uc, _, _ := categoryFixture()
	mustCreateCategory(t, uc, testTenantA, "Electrónica", "")
	other := mustCreateCategory(t, uc, testTenantA, "Hogar", "")

	_, err := uc.Update(context.Background(), sellerActor(testTenantA), other.ID, dto.UpdateCategoryRequest{
		Name: "Electrónica",
	})
	assert.ErrorIs(t, err, domain.ErrNameConflict)
}

func TestCategoryUpdate_MismoNombrePropio_Permitido(t *testing.T) {
	uc, _, _ := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Electrónica", "")

	out, err := uc.Update(context.Background(), sellerActor(testTenantA), root.ID, dto.UpdateCategoryRequest{
		Name:        "Electrónica",
		Description: "Dispositivos y accesorios",
	})
	require.NoError(t, err, "conservar el propio nombre no es conflicto")
	assert.Equal(t, "Dispositivos y accesorios", out.Description)
}

func TestCategoryUpdate_CambiaPadre(t *testing.T) {
	uc, _, _ := categoryFixture()
	a := mustCreateCategory(t, uc, testTenantA, "A", "")
	b := mustCreateCategory(t, uc, testTenantA, "B", "")

	out, err := uc.Update(context.Background(), sellerActor(testTenantA), b.ID, dto.UpdateCategoryRequest{
		Name:     "B",
		ParentID: a.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, out.ParentID)

	children, err := uc.GetChildren(a.ID, testTenantA)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, b.ID, children[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: guardas de referencias vivas
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryDelete_ConSubcategorias_Bloqueado(t *testing.T) {
	uc, _, _ := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Electrónica", "")
	mustCreateCategory(t, uc, testTenantA, "Celulares", root.ID)

	err := uc.Delete(context.Background(), sellerActor(testTenantA), root.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryHasChildren)
}

func TestCategoryDelete_ConProductosActivos_Bloqueado(t *testing.T) {
	uc, categories, products := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Electrónica", "")

	productSvc := usecase.NewProductService(products, memory.NewTxRunner(categories, products), nil)
	_, err := productSvc.Create(context.Background(), sellerActor(testTenantA), dto.CreateProductRequest{
		Name:       "Teléfono",
		SKU:        "PHONE-001",
		Price:      decimal.NewFromInt(100),
		Currency:   "COP",
		CategoryID: root.ID,
	})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), sellerActor(testTenantA), root.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryHasProducts)
}

// Un producto soft-deleted no cuenta como referencia viva: tras eliminarlo,
// la categoría queda liberada.
func TestCategoryDelete_ProductoEliminado_NoBloquea(t *testing.T) {
	uc, categories, products := categoryFixture()
	root := mustCreateCategory(t, uc, testTenantA, "Electrónica", "")

	productSvc := usecase.NewProductService(products, memory.NewTxRunner(categories, products), nil)
	created, err := productSvc.Create(context.Background(), sellerActor(testTenantA), dto.CreateProductRequest{
		Name:       "Teléfono",
		SKU:        "PHONE-001",
		Price:      decimal.NewFromInt(100),
		Currency:   "COP",
		CategoryID: root.ID,
	})
	require.NoError(t, err)
	require.NoError(t, productSvc.Delete(context.Background(), sellerActor(testTenantA), created.ID))

	err = uc.Delete(context.Background(), sellerActor(testTenantA), root.ID)
	require.NoError(t, err, "sin referencias vivas el borrado debe proceder")

	_, err = uc.GetByID(root.ID, testTenantA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDelete_Inexistente_NotFound(t *testing.T) {
	uc, _, _ := categoryFixture()

	err := uc.Delete(context.Background(), sellerActor(testTenantA), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CanManage
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCanManage(t *testing.T) {
	uc, _, _ := categoryFixture()

	assert.True(t, uc.CanManage([]string{domain.RoleSeller}), "SELLER administra catálogo")
	assert.True(t, uc.CanManage([]string{domain.RoleAdmin}), "ADMIN administra catálogo")
	assert.True(t, uc.CanManage([]string{"BUYER", domain.RoleSeller}), "basta uno de los roles")
	assert.False(t, uc.CanManage([]string{"BUYER"}))
	assert.False(t, uc.CanManage(nil))
}
